package request

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	// Username or email
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
