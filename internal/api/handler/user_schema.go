package handler

import "github.com/adsboard/marketplace-api/internal/core/domain"

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

type updateUserRequest struct {
	Username domain.Optional[string] `json:"username" swaggertype:"string"`
	Password domain.Optional[string] `json:"password" swaggertype:"string"`
	Role     domain.Optional[string] `json:"role" swaggertype:"string"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
