package dto

import "time"

// LoginRequest carries portal credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed bearer token and the actor it represents.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Actor     ScholarResponse `json:"actor"`
}
