package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// CloudinaryStore uploads images to Cloudinary. The deletion handle is the
// asset's public ID.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

func NewCloudinaryStore(cfg CloudinaryConfig, logger *zap.Logger) (*CloudinaryStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	return &CloudinaryStore{cld: cld, logger: logger}, nil
}

// Ping checks credentials; callers log the outcome and carry on.
func (s *CloudinaryStore) Ping(ctx context.Context) error {
	_, err := s.cld.Admin.Ping(ctx)
	return err
}

func (s *CloudinaryStore) Upload(ctx context.Context, upload *Upload) (*Asset, error) {
	res, err := s.cld.Upload.Upload(ctx, upload.Body, uploader.UploadParams{ResourceType: "image"})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	s.logger.Debug("uploaded image", zap.String("public_id", res.PublicID))
	return &Asset{URL: res.SecureURL, ID: res.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, id string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id, ResourceType: "image"})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", id, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", id, res.Error.Message)
	}
	return nil
}
