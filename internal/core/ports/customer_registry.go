package ports

import (
	"context"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

// CustomerRegistry owns the customer list and its derived aggregates.
type CustomerRegistry interface {
	Initialize(ctx context.Context) error
	List(ctx context.Context) []domain.Customer
	Create(ctx context.Context, in domain.CustomerCreate) (*domain.Customer, error)
	Update(ctx context.Context, in domain.CustomerUpdate) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	FindByID(id string) (*domain.Customer, bool)
	Stats() domain.CustomerStats
	ByMonth() []domain.MonthlyCount
	Status() domain.RegistryStatus
}
