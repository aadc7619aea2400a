package handler

import (
	"time"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required"`
	Username  string `json:"username"  validate:"required,min=2"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password"`
}

// userResponse is a User without its password hash.
type userResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	FirstName string      `json:"firstName,omitempty"`
	LastName  string      `json:"lastName,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type sessionResponse struct {
	User            *userResponse `json:"user"`
	Token           string        `json:"token,omitempty"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	IsLoading       bool          `json:"isLoading"`
	Error           string        `json:"error,omitempty"`
}

// --- Customers ---

type createCustomerRequest struct {
	Name          string `json:"name"          validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Status        string `json:"status"        validate:"required,oneof=Active Inactive Pending"`
	Notes         string `json:"notes"`
	ContactNumber string `json:"contactNumber"`
	Company       string `json:"company"`
}

type updateCustomerRequest struct {
	Name          *string `json:"name"          validate:"omitempty,min=1"`
	Email         *string `json:"email"         validate:"omitempty,email"`
	Status        *string `json:"status"        validate:"omitempty,oneof=Active Inactive Pending"`
	Notes         *string `json:"notes"`
	ContactNumber *string `json:"contactNumber"`
	Company       *string `json:"company"`
}

type customerListResponse struct {
	Customers []domain.Customer     `json:"customers"`
	Total     int                   `json:"total"`
	Status    domain.RegistryStatus `json:"status"`
}

// --- Navigation ---

type routeResponse struct {
	Name          domain.RouteName `json:"name"`
	Path          string           `json:"path"`
	Title         string           `json:"title"`
	DocumentTitle string           `json:"documentTitle"`
	RequiresAuth  bool             `json:"requiresAuth"`
}

type navigationResponse struct {
	Current       routeResponse `json:"current"`
	Authenticated bool          `json:"authenticated"`
}
