package models

// UploadAuthorization is the ephemeral result of a presign request. The
// client performs the PUT against UploadURL directly; nothing is persisted.
type UploadAuthorization struct {
	UploadURL string            `json:"uploadUrl"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	Key       string            `json:"key"`
	ObjectURL string            `json:"objectUrl"`
	ExpiresIn int64             `json:"expiresIn"`
	MaxBytes  int64             `json:"maxBytes"`
}
