package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

type stubCustomerRegistry struct {
	customers []domain.Customer
	createFn  func(ctx context.Context, in domain.CustomerCreate) (*domain.Customer, error)
	updateFn  func(ctx context.Context, in domain.CustomerUpdate) (*domain.Customer, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (s *stubCustomerRegistry) Initialize(context.Context) error { return nil }

func (s *stubCustomerRegistry) List(context.Context) []domain.Customer { return s.customers }

func (s *stubCustomerRegistry) Create(ctx context.Context, in domain.CustomerCreate) (*domain.Customer, error) {
	return s.createFn(ctx, in)
}

func (s *stubCustomerRegistry) Update(ctx context.Context, in domain.CustomerUpdate) (*domain.Customer, error) {
	return s.updateFn(ctx, in)
}

func (s *stubCustomerRegistry) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubCustomerRegistry) FindByID(id string) (*domain.Customer, bool) {
	for i := range s.customers {
		if s.customers[i].ID == id {
			c := s.customers[i]
			return &c, true
		}
	}
	return nil, false
}

func (s *stubCustomerRegistry) Stats() domain.CustomerStats {
	return domain.CustomerStats{Total: len(s.customers), Active: len(s.customers)}
}

func (s *stubCustomerRegistry) ByMonth() []domain.MonthlyCount {
	return []domain.MonthlyCount{{Month: "Jan 2026", Count: 1}}
}

func (s *stubCustomerRegistry) Status() domain.RegistryStatus { return domain.RegistryStatus{} }

func TestCustomerHandler_Create_Success(t *testing.T) {
	registry := &stubCustomerRegistry{
		createFn: func(ctx context.Context, in domain.CustomerCreate) (*domain.Customer, error) {
			if in.Name != "Acme" || in.Status != domain.StatusPending || in.Company != "Acme Inc" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Customer{ID: "7", Name: in.Name, Email: in.Email, Status: in.Status}, nil
		},
	}
	h := NewCustomerHandler(registry)

	c, rec := newContext(http.MethodPost, "/v1/customers",
		`{"name":"Acme","email":"ops@acme.test","status":"Pending","company":"Acme Inc"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/v1/customers/7" {
		t.Fatalf("unexpected Location %q", loc)
	}

	var body domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.ID != "7" || body.Status != domain.StatusPending {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestCustomerHandler_Create_RejectsUnknownStatus(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerRegistry{})

	c, _ := newContext(http.MethodPost, "/v1/customers", `{"name":"Acme","email":"ops@acme.test","status":"active"}`)
	expectHTTPError(t, h.Create(c), http.StatusUnprocessableEntity)
}

func TestCustomerHandler_Create_Duplicate(t *testing.T) {
	registry := &stubCustomerRegistry{
		createFn: func(context.Context, domain.CustomerCreate) (*domain.Customer, error) {
			return nil, domain.ErrDuplicateCustomerEmail
		},
	}
	h := NewCustomerHandler(registry)

	c, _ := newContext(http.MethodPost, "/v1/customers", `{"name":"A","email":"a@x.test","status":"Active"}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrDuplicateCustomerEmail) {
		t.Fatalf("expected ErrDuplicateCustomerEmail, got %v", err)
	}
}

func TestCustomerHandler_Update_PartialFields(t *testing.T) {
	registry := &stubCustomerRegistry{
		updateFn: func(ctx context.Context, in domain.CustomerUpdate) (*domain.Customer, error) {
			if in.ID != "3" {
				t.Fatalf("unexpected id %q", in.ID)
			}
			if in.Status == nil || *in.Status != domain.StatusInactive {
				t.Fatalf("expected status Inactive, got %v", in.Status)
			}
			if in.Name != nil || in.Email != nil || in.Notes != nil {
				t.Fatalf("omitted fields must stay nil: %+v", in)
			}
			return &domain.Customer{ID: "3", Status: *in.Status}, nil
		},
	}
	h := NewCustomerHandler(registry)

	c, rec := newContext(http.MethodPatch, "/v1/customers/3", `{"status":"Inactive"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCustomerHandler_Get_NotFound(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerRegistry{})

	c, _ := newContext(http.MethodGet, "/v1/customers/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")
	if err := h.Get(c); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerHandler_Delete(t *testing.T) {
	var deleted string
	registry := &stubCustomerRegistry{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewCustomerHandler(registry)

	c, rec := newContext(http.MethodDelete, "/v1/customers/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != "2" {
		t.Fatalf("expected 204 deleting 2, got %d deleting %q", rec.Code, deleted)
	}
}

func TestCustomerHandler_List(t *testing.T) {
	registry := &stubCustomerRegistry{customers: []domain.Customer{{ID: "1"}, {ID: "2"}}}
	h := NewCustomerHandler(registry)

	c, rec := newContext(http.MethodGet, "/v1/customers", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body customerListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Total != 2 || len(body.Customers) != 2 {
		t.Fatalf("unexpected list: %+v", body)
	}
}
