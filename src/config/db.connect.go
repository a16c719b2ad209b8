package config

import (
	"context"
	"fmt"
	"time"

	catalog "cinestash/src/modules/catalog/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig is shared by the postgres connection and the sqlite test stores.
func GormConfig(logger *zap.Logger) *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.New(
			zap.NewStdLog(logger.Named("gorm")),
			gormlogger.Config{
				SlowThreshold:             500 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
		TranslateError: true,
		// Popularity rows may outlive their entity until reconciled.
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// ConnectDatabase opens postgres and migrates the catalog tables.
func ConnectDatabase(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), GormConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	logger.Info("connected to PostgreSQL")

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	logger.Info("all migrations completed")
	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		catalog.MigrateCatalog,
	}
	for _, migrate := range migrations {
		if err := migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// CheckConnection pings the database and runs a trivial query.
func CheckConnection(ctx context.Context, db *gorm.DB, logger *zap.Logger) bool {
	if db == nil {
		return false
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to get generic database object", zap.Error(err))
		return false
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn("database ping failed", zap.Error(err))
		return false
	}

	var result int
	if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		logger.Warn("test query failed", zap.Error(err))
		return false
	}
	return result == 1
}
