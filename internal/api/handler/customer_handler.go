package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
	"github.com/99minutos/customer-desk/internal/pkg/metrics"
)

// CustomerHandler handles HTTP requests for customer records and their aggregates.
type CustomerHandler struct {
	customers ports.CustomerRegistry
}

func NewCustomerHandler(customers ports.CustomerRegistry) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List handles GET /v1/customers.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  customerListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers := h.customers.List(c.Request().Context())
	return c.JSON(http.StatusOK, customerListResponse{
		Customers: customers,
		Total:     len(customers),
		Status:    h.customers.Status(),
	})
}

// Get handles GET /v1/customers/:id.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  domain.Customer
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, ok := h.customers.FindByID(c.Param("id"))
	if !ok {
		return domain.ErrCustomerNotFound
	}
	return c.JSON(http.StatusOK, customer)
}

// Create handles POST /v1/customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := h.customers.Create(c.Request().Context(), toCustomerCreate(req))
	metrics.CustomerMutationsTotal.WithLabelValues("create", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	h.observeSize()

	c.Response().Header().Set(echo.HeaderLocation, "/v1/customers/"+customer.ID)
	return c.JSON(http.StatusCreated, customer)
}

// Update handles PATCH /v1/customers/:id. Omitted fields keep their value.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Customer id"
// @Param        body  body      updateCustomerRequest  true  "Fields to change"
// @Success      200   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/customers/{id} [patch]
func (h *CustomerHandler) Update(c echo.Context) error {
	var req updateCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := h.customers.Update(c.Request().Context(), toCustomerUpdate(c.Param("id"), req))
	metrics.CustomerMutationsTotal.WithLabelValues("update", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Delete handles DELETE /v1/customers/:id.
//
// @Summary      Delete a customer
// @Tags         customers
// @Security     BearerAuth
// @Param        id   path  string  true  "Customer id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	err := h.customers.Delete(c.Request().Context(), c.Param("id"))
	metrics.CustomerMutationsTotal.WithLabelValues("delete", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	h.observeSize()
	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHandler) observeSize() {
	metrics.RegistrySize.WithLabelValues(ports.KeyCustomers).Set(float64(h.customers.Stats().Total))
}

// Stats handles GET /v1/customers/stats.
//
// @Summary      Customer counters by status
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CustomerStats
// @Router       /v1/customers/stats [get]
func (h *CustomerHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.customers.Stats())
}

// Monthly handles GET /v1/customers/monthly.
//
// @Summary      Customers created per month, last six months
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.MonthlyCount
// @Router       /v1/customers/monthly [get]
func (h *CustomerHandler) Monthly(c echo.Context) error {
	return c.JSON(http.StatusOK, h.customers.ByMonth())
}
