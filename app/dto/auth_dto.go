package dto

// LoginRequest authenticates an operator
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginResponse carries the issued tokens and the authenticated user
type LoginResponse struct {
	User   AuthUserDTO `json:"user"`
	Tokens TokenDTO    `json:"tokens"`
}

// TokenDTO carries the issued token pair
type TokenDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthUserDTO is the authenticated-user view returned by login
type AuthUserDTO struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
