package models

// User is the visitor identity returned by the identity provider's user-info endpoint.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
