package dto

import (
	"github.com/mzaleski/project-hub-api/internal/models"
)

// UserSummaryDTO represents a user in API responses and chat payloads
type UserSummaryDTO struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// TokenResponse is returned on successful login
type TokenResponse struct {
	Token string         `json:"token"`
	User  UserSummaryDTO `json:"user"`
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}
