package dto

// CreateUserRequest registers an operator account. The person identity is
// resolved through the shared entity engine.
type CreateUserRequest struct {
	Username string      `json:"username" validate:"required,min=3,max=50"`
	Password string      `json:"password" validate:"required,min=8,max=128"`
	RoleName string      `json:"role_name" validate:"required,oneof=admin operator viewer"`
	Person   PersonInput `json:"person" validate:"required"`
}

// UserDTO is the API representation of an operator account
type UserDTO struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Person   PersonDTO `json:"person"`
}
