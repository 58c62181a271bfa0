package interfaces

import (
	"context"
	"time"
)

// PresignRequest describes a single write authorization to mint.
// ContentLength < 0 means "not constrained".
type PresignRequest struct {
	Key           string
	ContentType   string
	ContentLength int64
	Expires       time.Duration
}

// ObjectPresigner mints time-limited write URLs against object storage.
// The production implementation wraps the S3 presign client.
type ObjectPresigner interface {
	PresignPut(ctx context.Context, req PresignRequest) (url string, err error)
}
