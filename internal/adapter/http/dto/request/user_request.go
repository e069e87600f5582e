package request

import (
	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	AccessLevel string `json:"access_level" binding:"omitempty,oneof=admin standard"`
	Status      string `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (r CreateUserRequest) ToInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		AccessLevel: entities.AccessLevel(r.AccessLevel),
		Status:      entities.UserStatus(r.Status),
	}
}

// UpdateUserRequest is the body of PATCH /users/:id. current_password is
// needed when changing one's own password.
type UpdateUserRequest struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	AccessLevel     *string `json:"access_level" binding:"omitempty,oneof=admin standard"`
	Status          *string `json:"status" binding:"omitempty,oneof=active inactive"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
}

func (r UpdateUserRequest) ToInput() usecase.UpdateUserInput {
	in := usecase.UpdateUserInput{
		Username:        r.Username,
		Email:           r.Email,
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
	}
	if r.AccessLevel != nil {
		l := entities.AccessLevel(*r.AccessLevel)
		in.AccessLevel = &l
	}
	if r.Status != nil {
		s := entities.UserStatus(*r.Status)
		in.Status = &s
	}
	return in
}
