package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
)

type UserHandler struct {
	users ports.UserRegistry
}

func NewUserHandler(users ports.UserRegistry) *UserHandler {
	return &UserHandler{users: users}
}

// List returns every registered user, or the single user matching ?email=.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "Exact, case-sensitive email"
// @Success      200    {array}   userResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	if email := c.QueryParam("email"); email != "" {
		u, ok := h.users.FindByEmail(email)
		if !ok {
			return domain.ErrUserNotFound
		}
		return c.JSON(http.StatusOK, []*userResponse{toUserResponse(u)})
	}

	users := h.users.Users()
	resp := make([]*userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns one user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	u, ok := h.users.FindByID(c.Param("id"))
	if !ok {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}
