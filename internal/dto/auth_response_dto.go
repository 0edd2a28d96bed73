package dto

// TokenPairResponse carries a freshly issued access/refresh token pair.
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse is the body of a successful login: the sanitized user plus
// both tokens (which are also set as cookies).
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
