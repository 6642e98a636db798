package auth

import "github.com/zelenagryadka/zelena-api/internal/users"

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Nickname string `json:"nickname" validate:"required,min=3,max=40"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest is the payload for credential authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the minted token plus the public user shape.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
