package dto

// RegisterUserRequest carries the name to register, read from the query string.
type RegisterUserRequest struct {
	Name string `form:"name" binding:"required"`
}

// RegisterUserResponse returns the API key issued at registration.
type RegisterUserResponse struct {
	APIKey string `json:"apiKey"`
}
