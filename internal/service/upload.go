package service

import (
	"context"

	"shop-server/internal/models"
)

// UploadService issues time-limited write authorizations against object
// storage. It never moves object data: the client PUTs directly against the
// returned URL.
type UploadService interface {
	// Presign validates the upload policy and mints a write authorization.
	// size is the declared content length in bytes; nil leaves the signature
	// unconstrained by length.
	Presign(ctx context.Context, fileName, contentType string, size *int64) (*models.UploadAuthorization, error)
}
