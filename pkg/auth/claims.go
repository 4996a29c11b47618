package auth

import "github.com/golang-jwt/jwt/v5"

// SessionTokenPayload carries the identity fields minted into a session token.
type SessionTokenPayload struct {
	UserID string
	Email  string
	Name   *string
	// JTI becomes the token id; generated when empty.
	JTI string
}

// SessionTokenClaims is the JWT claim set used for storefront sessions.
type SessionTokenClaims struct {
	UserID string  `json:"uid"`
	Email  string  `json:"email"`
	Name   *string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
