package models

// Form field names accepted by the login form.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// FormState holds the credentials typed into the login form.
type FormState struct {
	Email    string
	Password string
}

// SigninRequest represents the JSON body sent to the upstream sign-in API
// swagger:model SigninRequest
type SigninRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// SigninResponse represents a successful sign-in response
// swagger:model SigninResponse
type SigninResponse struct {
	// JWT token
	// example: JWT_TOKEN
	Token string `json:"token"`
}

// SigninErrorResponse represents an error response for sign-in
// swagger:model SigninErrorResponse
type SigninErrorResponse struct {
	// Human readable reason
	// example: Invalid credentials
	Message string `json:"message"`

	// Machine readable reason
	// example: email_not_verified
	Code string `json:"code,omitempty"`
}
