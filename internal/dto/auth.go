package dto

import (
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
)

// SignInRequest represents the credentials posted to the sign-in endpoint.
type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUpRequest represents a registration form. The backend account name is an email address.
type SignUpRequest struct {
	Username        string `json:"username" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// UserResponse defines the public data of an account.
type UserResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// SessionResponse is returned after signing in and by /auth/me.
// The token is only included right after sign-in; afterwards it travels in the cookie.
type SessionResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func ToUserResponse(user domain.User) UserResponse {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Roles:    roles,
	}
}

func ToSessionResponse(session *domain.Session, includeToken bool) SessionResponse {
	resp := SessionResponse{
		User:      ToUserResponse(session.User),
		ExpiresAt: session.ExpiresAt,
	}
	if includeToken {
		resp.Token = session.Token
	}
	return resp
}
