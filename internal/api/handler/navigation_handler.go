package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/customer-desk/internal/core/domain"
	"github.com/99minutos/customer-desk/internal/core/ports"
)

// authState is the part of the session the navigation endpoints read.
type authState interface {
	IsAuthenticated() bool
}

type NavigationHandler struct {
	nav     ports.Navigator
	session authState
}

func NewNavigationHandler(nav ports.Navigator, session authState) *NavigationHandler {
	return &NavigationHandler{nav: nav, session: session}
}

// Current returns the route the client is on.
//
// @Summary      Current route
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  navigationResponse
// @Router       /v1/navigation [get]
func (h *NavigationHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, navigationResponse{
		Current:       toRouteResponse(h.nav.Current()),
		Authenticated: h.session.IsAuthenticated(),
	})
}

// Navigate requests a route; the guard may redirect it.
//
// @Summary      Navigate to a route
// @Tags         navigation
// @Produce      json
// @Param        route  path      string  true  "Route name (login, home)"
// @Success      200    {object}  navigationResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/navigation/{route} [post]
func (h *NavigationHandler) Navigate(c echo.Context) error {
	authenticated := h.session.IsAuthenticated()
	route, err := h.nav.NavigateTo(c.Request().Context(), domain.RouteName(c.Param("route")), authenticated)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, navigationResponse{
		Current:       toRouteResponse(route),
		Authenticated: authenticated,
	})
}
