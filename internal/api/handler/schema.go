package handler

// Form contracts consumed from the signup and login pages. Username is the
// human-facing handle; email is the login key.

type signupRequest struct {
	Username string `form:"username" json:"username" validate:"required,alphanum,max=20"`
	Email    string `form:"email"    json:"email"    validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,max=20"`
}

type loginRequest struct {
	Email    string `form:"email"    json:"email"    validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,max=20"`
}
