package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
	"github.com/99minutos/customer-desk/internal/pkg/metrics"
)

type AuthHandler struct {
	users   ports.UserRegistry
	session ports.AuthSession
}

func NewAuthHandler(users ports.UserRegistry, session ports.AuthSession) *AuthHandler {
	return &AuthHandler{users: users, session: session}
}

// Register creates a new user account and logs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.users.Register(c.Request().Context(), toRegisterData(req))
	metrics.AuthEventsTotal.WithLabelValues("register", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	metrics.RegistrySize.WithLabelValues(ports.KeyUsers).Set(float64(h.users.Count()))

	return c.JSON(http.StatusCreated, toSessionResponse(h.session.Snapshot()))
}

// Login opens the session for an existing user.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.session.Login(c.Request().Context(), domain.Credentials{Email: req.Email, Password: req.Password})
	metrics.AuthEventsTotal.WithLabelValues("login", resultLabel(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionResponse(h.session.Snapshot()))
}

// Logout closes the session.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	metrics.AuthEventsTotal.WithLabelValues("logout", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Session validates the current session and returns its state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	err := h.session.CheckAuth(c.Request().Context())
	metrics.AuthEventsTotal.WithLabelValues("check", resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(h.session.Snapshot()))
}
