package domain

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionExpired     = errors.New("session expired")

	ErrCustomerNotFound       = errors.New("customer not found")
	ErrDuplicateCustomerEmail = errors.New("a customer with this email already exists")
	ErrInvalidStatus          = errors.New("invalid customer status")

	ErrRouteNotFound = errors.New("route not found")
)
