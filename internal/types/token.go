package types

import "github.com/google/uuid"

// TokenClaims holds the validated identity carried by a JWT
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
}
