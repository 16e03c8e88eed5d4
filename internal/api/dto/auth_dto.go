package dto

// Data Transfer Objects for the registration handshake and token endpoints

// EmailRequest: payload for requesting a confirmation code
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// EmailResponse: acknowledgement after a code was issued. Delivery is
// best-effort, so the message never reports transport status.
type EmailResponse struct {
	Message string `json:"message"`
}

// TokenRequest: payload for exchanging a confirmation code for tokens
type TokenRequest struct {
	Username         string `json:"username" binding:"required,min=3,max=50"`
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required,len=32"`
}

// TokenResponse: the issued credential pair
type TokenResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	TokenType    string `json:"token_type"` // e.g., "Bearer"
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// RefreshRequest: payload for refreshing an access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh" binding:"required"`
}

// RefreshResponse: a fresh access token
type RefreshResponse struct {
	AccessToken string `json:"access"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}
