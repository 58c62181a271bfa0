package models

import "errors"

// Application-wide standard errors
var (
	// Product Errors
	ErrProductNotFound = errors.New("product not found")

	// User & Authentication Errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Upload Policy Errors
	ErrUnsupportedMediaType = errors.New("content type is not allowed")
	ErrUploadTooLarge       = errors.New("declared upload size exceeds the limit")

	// General Request/Server Errors
	ErrInvalidInput   = errors.New("invalid input data")
	ErrEmptyUpdate    = errors.New("update payload contains no fields")
	ErrInternalServer = errors.New("internal server error")

	// ErrBackendNotConfigured signals a store operation against a backend
	// that was never wired up (missing table or bucket configuration).
	ErrBackendNotConfigured = errors.New("storage backend not configured")
)
