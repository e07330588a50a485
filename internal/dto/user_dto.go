package dto

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role"     validate:"required,oneof=admin cashier"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=2"`
	Password string `json:"password" validate:"omitempty,min=4"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin cashier"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
