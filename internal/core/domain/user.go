package domain

import "time"

// Role is the access level of a registered user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User models a registered account. The JSON shape is the persisted one.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Credentials identify a user at login.
type Credentials struct {
	Email    string
	Password string
}

// RegisterData carries everything needed to create an account.
type RegisterData struct {
	Credentials
	Username  string
	FirstName string
	LastName  string
}
