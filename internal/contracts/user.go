package contracts

import "Fundbridge/internal/domain/user"

type UserCreateRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=ENTREPRENEUR INVESTOR MENTOR"`
	Bio   string `json:"bio" binding:"omitempty,max=500"`
}

type UserUpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
	Bio  *string `json:"bio" binding:"omitempty,max=500"`
}

type UserResponse struct {
	User *user.User `json:"user"`
}
