package domain

import "time"

// CustomerStatus is the lifecycle state of a customer record.
type CustomerStatus string

const (
	StatusActive   CustomerStatus = "Active"
	StatusInactive CustomerStatus = "Inactive"
	StatusPending  CustomerStatus = "Pending"
)

// Valid reports whether s is one of the known statuses.
func (s CustomerStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// Customer is a business record owned by the customer registry.
type Customer struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Status        CustomerStatus `json:"status"`
	Notes         string         `json:"notes,omitempty"`
	ContactNumber string         `json:"contactNumber,omitempty"`
	Company       string         `json:"company,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// CustomerCreate holds the fields accepted when creating a customer.
type CustomerCreate struct {
	Name          string
	Email         string
	Status        CustomerStatus
	Notes         string
	ContactNumber string
	Company       string
}

// CustomerUpdate is a partial update: nil fields keep their current value.
type CustomerUpdate struct {
	ID            string
	Name          *string
	Email         *string
	Status        *CustomerStatus
	Notes         *string
	ContactNumber *string
	Company       *string
}

// CustomerStats are the status counters derived from the registry.
type CustomerStats struct {
	Total    int `json:"totalCustomers"`
	Active   int `json:"activeCustomers"`
	Inactive int `json:"inactiveCustomers"`
	Pending  int `json:"pendingCustomers"`
}

// MonthlyCount is one bucket of the customers-by-month histogram.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}
