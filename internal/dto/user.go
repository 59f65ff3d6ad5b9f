package dto

import "github.com/taskzen/taskzen/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	Availability string      `json:"availability"`
	Skills       []string    `json:"skills"`
}

// RegisterRequest is the body of a registration
type RegisterRequest struct {
	Name         string   `json:"name" binding:"required"`
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=8"`
	Availability string   `json:"availability"`
	Skills       []string `json:"skills"`
}

// LoginRequest carries password credentials. The token endpoint accepts it
// either as an OAuth2 form post or as JSON.
type LoginRequest struct {
	GrantType string `json:"grant_type" form:"grant_type"`
	Username  string `json:"username" form:"username" binding:"required"`
	Password  string `json:"password" form:"password" binding:"required"`
}

// TokenResponse is the OAuth2 token endpoint reply
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Availability: user.Availability,
		Skills:       skills,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	result := make([]UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, ToUserDTO(u))
	}
	return result
}

// ToModel converts a UserDTO received from the task API back to a model
func (d UserDTO) ToModel() models.User {
	return models.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Role:         d.Role,
		Availability: d.Availability,
		Skills:       d.Skills,
	}
}
