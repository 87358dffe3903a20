package dto

// UserListRequest narrows account list queries.
type UserListRequest struct {
	Role     string
	ClassID  uint
	Search   string
	Page     int
	PageSize int
}

// UserListResponse wraps a paginated account page.
type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// ResetPasswordRequest lets an admin assign a new password to any account.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}
