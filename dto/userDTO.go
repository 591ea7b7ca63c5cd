package dto

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UpdateProfileRequest struct {
	Nickname string `json:"nickname"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photoURL"`
}

type PasswordRequest struct {
	Password string `json:"password"`
}
