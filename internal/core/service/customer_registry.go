package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
)

// CustomerRegistry keeps the customer list in memory. Every mutation runs
// through the mutation queue and re-serialises the whole list before the new
// slice becomes visible to readers.
type CustomerRegistry struct {
	store ports.KeyValueStore
	queue ports.MutationQueue
	log   zerolog.Logger
	now   func() time.Time

	mu        sync.RWMutex
	customers []domain.Customer

	state opState
}

func NewCustomerRegistry(store ports.KeyValueStore, queue ports.MutationQueue, log zerolog.Logger, opts ...Option) *CustomerRegistry {
	o := buildOptions(opts)
	return &CustomerRegistry{
		store:     store,
		queue:     queue,
		log:       log,
		now:       o.now,
		customers: []domain.Customer{},
	}
}

// Initialize replaces the in-memory list with the stored one. A missing key is
// established with an empty list; undecodable data is logged and dropped.
// Storage failures leave the current state untouched and are returned.
func (r *CustomerRegistry) Initialize(ctx context.Context) error {
	return r.queue.Do(ctx, ports.KeyCustomers, func(ctx context.Context) error {
		customers, found, err := loadRecords[domain.Customer](ctx, r.store, ports.KeyCustomers)
		switch {
		case errors.Is(err, errDecode):
			r.log.Error().Err(err).Msg("failed to parse stored customers")
			customers = []domain.Customer{}
		case err != nil:
			r.log.Error().Err(err).Msg("failed to load customers")
			return err
		case !found:
			customers = []domain.Customer{}
			if err := saveRecords(ctx, r.store, ports.KeyCustomers, customers); err != nil {
				return err
			}
		}

		r.mu.Lock()
		r.customers = customers
		r.mu.Unlock()

		r.log.Debug().Int("count", len(customers)).Msg("customers loaded")
		return nil
	})
}

// List returns a copy of every customer in insertion order.
func (r *CustomerRegistry) List(ctx context.Context) []domain.Customer {
	r.state.begin()
	defer func() { _ = r.state.end(nil) }()
	return r.snapshot()
}

func (r *CustomerRegistry) Create(ctx context.Context, in domain.CustomerCreate) (*domain.Customer, error) {
	r.state.begin()

	var created domain.Customer
	err := r.queue.Do(ctx, ports.KeyCustomers, func(ctx context.Context) error {
		if !in.Status.Valid() {
			return domain.ErrInvalidStatus
		}

		current := r.snapshotShared()
		if emailTaken(current, in.Email, "") {
			return domain.ErrDuplicateCustomerEmail
		}

		now := r.now().UTC()
		created = domain.Customer{
			ID:            nextID(current, func(c domain.Customer) string { return c.ID }),
			Name:          in.Name,
			Email:         in.Email,
			Status:        in.Status,
			Notes:         in.Notes,
			ContactNumber: in.ContactNumber,
			Company:       in.Company,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return r.commit(ctx, append(slices.Clone(current), created))
	})
	if err != nil {
		r.log.Error().Err(err).Str("email", in.Email).Msg("failed to create customer")
		return nil, r.state.end(err)
	}

	r.log.Info().Str("customer_id", created.ID).Msg("customer created")
	return &created, r.state.end(nil)
}

// Update merges the non-nil fields of in over the stored record.
func (r *CustomerRegistry) Update(ctx context.Context, in domain.CustomerUpdate) (*domain.Customer, error) {
	r.state.begin()

	var updated domain.Customer
	err := r.queue.Do(ctx, ports.KeyCustomers, func(ctx context.Context) error {
		current := r.snapshotShared()
		idx := slices.IndexFunc(current, func(c domain.Customer) bool { return c.ID == in.ID })
		if idx == -1 {
			return domain.ErrCustomerNotFound
		}

		updated = current[idx]
		if in.Email != nil && *in.Email != updated.Email && emailTaken(current, *in.Email, updated.ID) {
			return domain.ErrDuplicateCustomerEmail
		}
		if in.Status != nil && !in.Status.Valid() {
			return domain.ErrInvalidStatus
		}

		applyUpdate(&updated, in)
		updated.UpdatedAt = r.now().UTC()

		next := slices.Clone(current)
		next[idx] = updated
		return r.commit(ctx, next)
	})
	if err != nil {
		r.log.Error().Err(err).Str("customer_id", in.ID).Msg("failed to update customer")
		return nil, r.state.end(err)
	}

	r.log.Info().Str("customer_id", updated.ID).Msg("customer updated")
	return &updated, r.state.end(nil)
}

func (r *CustomerRegistry) Delete(ctx context.Context, id string) error {
	r.state.begin()

	err := r.queue.Do(ctx, ports.KeyCustomers, func(ctx context.Context) error {
		current := r.snapshotShared()
		idx := slices.IndexFunc(current, func(c domain.Customer) bool { return c.ID == id })
		if idx == -1 {
			return domain.ErrCustomerNotFound
		}
		return r.commit(ctx, slices.Delete(slices.Clone(current), idx, idx+1))
	})
	if err != nil {
		r.log.Error().Err(err).Str("customer_id", id).Msg("failed to delete customer")
		return r.state.end(err)
	}

	r.log.Info().Str("customer_id", id).Msg("customer deleted")
	return r.state.end(nil)
}

func (r *CustomerRegistry) FindByID(id string) (*domain.Customer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.ID == id {
			found := c
			return &found, true
		}
	}
	return nil, false
}

func (r *CustomerRegistry) Status() domain.RegistryStatus {
	return r.state.snapshot()
}

// commit persists next and then publishes it. Must run inside the queue.
func (r *CustomerRegistry) commit(ctx context.Context, next []domain.Customer) error {
	if err := saveRecords(ctx, r.store, ports.KeyCustomers, next); err != nil {
		return err
	}
	r.mu.Lock()
	r.customers = next
	r.mu.Unlock()
	return nil
}

func (r *CustomerRegistry) snapshot() []domain.Customer {
	return slices.Clone(r.snapshotShared())
}

// snapshotShared returns the current slice without copying. Callers must not
// modify it; mutations always build a new slice.
func (r *CustomerRegistry) snapshotShared() []domain.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.customers
}

func emailTaken(customers []domain.Customer, email, exceptID string) bool {
	return slices.ContainsFunc(customers, func(c domain.Customer) bool {
		return c.Email == email && c.ID != exceptID
	})
}

func applyUpdate(c *domain.Customer, in domain.CustomerUpdate) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.ContactNumber != nil {
		c.ContactNumber = *in.ContactNumber
	}
	if in.Company != nil {
		c.Company = *in.Company
	}
}
