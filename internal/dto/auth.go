package dto

// AdminLoginRequest exchanges the deployment admin key for a bearer token.
type AdminLoginRequest struct {
	AdminKey string `json:"admin_key" validate:"required"`
}

// AdminLoginResponse carries the signed token and its lifetime.
type AdminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
