package models

// UserKeyPrefix namespaces user items when they share a table with products.
const UserKeyPrefix = "user::"

// User represents a registered account.
type User struct {
	ID           string `json:"id" dynamodbav:"id"`
	Username     string `json:"username" dynamodbav:"username"`
	PasswordHash string `json:"-" dynamodbav:"passwordHash"` // Never serialized to clients
	Name         string `json:"name,omitempty" dynamodbav:"name,omitempty"`
}

// UserSummary is the projection safe to hand out: no credential material.
type UserSummary struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// UserKey derives the storage key for a username.
func UserKey(username string) string {
	return UserKeyPrefix + username
}
