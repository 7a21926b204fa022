package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Principal identifies the manager a dashboard snapshot belongs to, together
// with the bearer token forwarded to the backend.
type Principal struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	Email  string `json:"email,omitempty"`
	Token  string `json:"-"`
}

// JWTClaims mirrors the access token issued by the driving-school backend.
type JWTClaims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
