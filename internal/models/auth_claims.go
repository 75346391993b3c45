package models

import "github.com/golang-jwt/jwt/v5"

// JwtCustomClaims is the claim set issued by the identity provider.
type JwtCustomClaims struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
