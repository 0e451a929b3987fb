package response

import (
	"github.com/betterfund/betterfund-api/internal/domain"
)

// UserSummary is the public shape of an account, the credential and
// identity document fields never appear in responses.
type UserSummary struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"isAdmin"`
}

func NewUserSummary(user domain.User) UserSummary {
	return UserSummary{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role.Name,
		IsAdmin:  user.IsAdmin(),
	}
}

type RegisterResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}
