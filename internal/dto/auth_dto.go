package dto

import "github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"

// LoginRequest authenticates a user by NIS (students) or email (staff).
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=6"`
}

// LoginResponse returns the signed token with the authenticated profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterRequest creates a new account. Students require a NIS and class,
// staff an email address.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"required,oneof=student teacher admin"`
	NIS      string `json:"nis" validate:"omitempty,numeric,min=4,max=32"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
	ClassID  *uint  `json:"class_id"`
}

// ChangePasswordRequest rotates the caller's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// UserResponse serializes an account without credentials.
type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	NIS       string `json:"nis,omitempty"`
	Email     string `json:"email,omitempty"`
	ClassID   *uint  `json:"class_id,omitempty"`
	ClassName string `json:"class_name,omitempty"`
}

// NewUserResponse maps the model to its wire representation.
func NewUserResponse(u models.User) UserResponse {
	resp := UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Role:    u.Role,
		NIS:     u.NIS,
		Email:   u.Email,
		ClassID: u.ClassID,
	}
	if u.Class != nil {
		resp.ClassName = u.Class.Name
	}
	return resp
}
