package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"shop-server/internal/config"
	"shop-server/internal/interfaces"
	"shop-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure uploadServiceImpl implements UploadService
var _ UploadService = (*uploadServiceImpl)(nil)

// allowedContentTypes is the upload policy allow-list.
var allowedContentTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
}

type uploadServiceImpl struct {
	presigner interfaces.ObjectPresigner
	cfg       *config.Config
	logger    *zap.Logger
}

// NewUploadService creates a new instance of uploadServiceImpl.
func NewUploadService(presigner interfaces.ObjectPresigner, cfg *config.Config, logger *zap.Logger) UploadService {
	return &uploadServiceImpl{
		presigner: presigner,
		cfg:       cfg,
		logger:    logger.Named("UploadService"),
	}
}

// Presign validates in order: required inputs, content type, declared size.
// The key is unguessable and keeps the original extension so the stored
// object stays recognizable.
func (s *uploadServiceImpl) Presign(ctx context.Context, fileName, contentType string, size *int64) (*models.UploadAuthorization, error) {
	if fileName == "" || contentType == "" {
		return nil, fmt.Errorf("fileName and contentType are required: %w", models.ErrInvalidInput)
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		s.logger.Warn("Presign rejected: content type not allowed", zap.String("contentType", contentType))
		return nil, fmt.Errorf("content type %q: %w", contentType, models.ErrUnsupportedMediaType)
	}
	if size != nil && *size > s.cfg.MaxUploadBytes {
		s.logger.Warn("Presign rejected: declared size over limit",
			zap.Int64("size", *size), zap.Int64("maxBytes", s.cfg.MaxUploadBytes))
		return nil, fmt.Errorf("declared size %d exceeds %d bytes: %w", *size, s.cfg.MaxUploadBytes, models.ErrUploadTooLarge)
	}
	if s.cfg.S3Bucket == "" {
		return nil, fmt.Errorf("no upload bucket configured: %w", models.ErrBackendNotConfigured)
	}

	ext := strings.ToLower(path.Ext(fileName))
	key := s.cfg.S3Prefix + uuid.NewString() + ext

	contentLength := int64(-1)
	if size != nil {
		contentLength = *size
	}

	uploadURL, err := s.presigner.PresignPut(ctx, interfaces.PresignRequest{
		Key:           key,
		ContentType:   contentType,
		ContentLength: contentLength,
		Expires:       s.cfg.PresignTTL,
	})
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	auth := &models.UploadAuthorization{
		UploadURL: uploadURL,
		Method:    "PUT",
		Headers:   map[string]string{"Content-Type": contentType},
		Key:       key,
		ObjectURL: s.objectURL(key),
		ExpiresIn: int64(s.cfg.PresignTTL.Seconds()),
		MaxBytes:  s.cfg.MaxUploadBytes,
	}

	s.logger.Info("Upload authorization issued", zap.String("key", key), zap.String("contentType", contentType))
	return auth, nil
}

// objectURL derives the deterministic public read URL for a key: the
// configured public base when present, otherwise the conventional
// virtual-hosted-style S3 URL.
func (s *uploadServiceImpl) objectURL(key string) string {
	if s.cfg.S3PublicURLBase != "" {
		return strings.TrimRight(s.cfg.S3PublicURLBase, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.S3Bucket, s.cfg.AWSRegion, key)
}
