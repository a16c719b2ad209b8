package config

import (
	"context"
	"fmt"

	media "cinestash/src/modules/media/services"

	"go.uber.org/zap"
)

// ConnectMedia builds the configured media store. The MinIO store is also
// returned so the static proxy can serve its objects; it is nil for
// Cloudinary.
func ConnectMedia(ctx context.Context, cfg Config, logger *zap.Logger) (media.Store, *media.MinioStore, error) {
	logger = logger.Named("media")
	switch cfg.MediaDriver {
	case MediaMinio:
		store, err := media.NewMinioStore(ctx, media.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
			PublicURL: cfg.Minio.PublicURL,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case MediaCloudinary:
		store, err := media.NewCloudinaryStore(media.CloudinaryConfig{
			CloudName: cfg.Cloudinary.CloudName,
			APIKey:    cfg.Cloudinary.APIKey,
			APISecret: cfg.Cloudinary.APISecret,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Ping(ctx); err != nil {
			logger.Error("cloudinary ping failed", zap.Error(err))
		} else {
			logger.Info("cloudinary ok")
		}
		return store, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown media driver %q", cfg.MediaDriver)
}
