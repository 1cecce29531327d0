package request

// LoginRequest represents a login request
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// SetPasswordRequest sets a first-login customer's password by phone.
type SetPasswordRequest struct {
	Phone           string `json:"phone" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" binding:"omitempty,eqfield=Password"`
}

// SetPasswordByIDRequest lets staff set a customer's password.
type SetPasswordByIDRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}
