package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	SalesRepID uuid.UUID
	RegionID   uuid.UUID
	Name       string
	Phone      string
	Role       string
}

// AccessTokenClaims represents the typed JWT issued to sales reps.
type AccessTokenClaims struct {
	SalesRepID uuid.UUID `json:"sales_rep_id"`
	RegionID   uuid.UUID `json:"region_id"`
	Name       string    `json:"name,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}
