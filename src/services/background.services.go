package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reconcileTimeout = 5 * time.Minute

// Reconciler removes popularity rows whose entity no longer exists.
type Reconciler interface {
	ReconcilePopularity(ctx context.Context) (int64, error)
}

// NamedReconciler labels a reconciler for logging.
type NamedReconciler struct {
	Name string
	Reconciler
}

// SetupBackgroundJobs schedules the popularity reconcile job. An empty
// schedule disables it and returns nil.
func SetupBackgroundJobs(schedule string, jobs []NamedReconciler, logger *zap.Logger) (*cron.Cron, error) {
	logger = logger.Named("cron")
	if schedule == "" {
		logger.Info("reconcile job disabled")
		return nil, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		ReconcileOrphans(ctx, jobs, logger)
	}); err != nil {
		return nil, err
	}

	c.Start()
	logger.Info("background jobs initialized", zap.String("schedule", schedule))
	return c, nil
}

// ReconcileOrphans runs every reconciler once; a failing kind does not stop
// the others.
func ReconcileOrphans(ctx context.Context, jobs []NamedReconciler, logger *zap.Logger) map[string]int64 {
	removed := make(map[string]int64, len(jobs))
	for _, job := range jobs {
		n, err := job.ReconcilePopularity(ctx)
		if err != nil {
			logger.Error("reconcile failed", zap.String("kind", job.Name), zap.Error(err))
			continue
		}
		removed[job.Name] = n
		logger.Info("reconciled popularity", zap.String("kind", job.Name), zap.Int64("removed", n))
	}
	return removed
}
