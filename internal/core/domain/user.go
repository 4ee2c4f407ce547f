package domain

// User is an API client identified by a unique name and an opaque API key.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	APIKey string `json:"-"`
}
