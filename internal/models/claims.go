package models

import "github.com/golang-jwt/jwt/v5"

// Claims carries the identity embedded in access tokens.
// Subject duplicates Username for standard-claims consumers.
type Claims struct {
	Username             string `json:"username"`
	jwt.RegisteredClaims        // Issuer, Subject, ExpiresAt, IssuedAt, ...
}
