package dto

// RegisterUserRequest carries the text fields of the multipart registration
// form. The avatar/cover image files are read from the form separately.
type RegisterUserRequest struct {
	FullName string `form:"fullName" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginRequest carries login credentials; either Username or Email must be set.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the optional JSON body of a refresh call; the token
// may come from the cookie instead.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest carries a password rotation.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// UpdateAccountRequest updates the mutable profile fields; both are required.
type UpdateAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// GoogleExchangeCodeRequest carries the authorization code obtained by the
// frontend from Google's consent flow.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
