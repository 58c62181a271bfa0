// Package storage wraps the object-storage capability: minting presigned
// write URLs. No object data ever flows through this service.
package storage

import (
	"context"
	"fmt"

	"shop-server/internal/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Compile-time check to ensure S3Presigner implements ObjectPresigner
var _ interfaces.ObjectPresigner = (*S3Presigner)(nil)

// S3Presigner mints presigned PUT URLs scoped to one key, content type and
// (optionally) content length. A mismatched upload fails the signature check
// on the S3 side.
type S3Presigner struct {
	presign *s3.PresignClient
	bucket  string
	logger  *zap.Logger
}

// NewS3Presigner creates an S3-backed presigner. A non-empty endpoint
// overrides the default resolver with path-style addressing (minio).
func NewS3Presigner(awsCfg aws.Config, bucket, endpoint string, logger *zap.Logger) *S3Presigner {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		logger:  logger.Named("S3Presigner"),
	}
}

// PresignPut returns a time-limited write URL for exactly the requested key.
func (p *S3Presigner) PresignPut(ctx context.Context, req interfaces.PresignRequest) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(req.Key),
		ContentType: aws.String(req.ContentType),
	}
	if req.ContentLength >= 0 {
		input.ContentLength = aws.Int64(req.ContentLength)
	}

	signed, err := p.presign.PresignPutObject(ctx, input, s3.WithPresignExpires(req.Expires))
	if err != nil {
		p.logger.Error("Failed to presign put object", zap.Error(err), zap.String("key", req.Key))
		return "", fmt.Errorf("failed to presign put object: %w", err)
	}

	p.logger.Debug("Presigned put URL issued", zap.String("key", req.Key), zap.Duration("expires", req.Expires))
	return signed.URL, nil
}
