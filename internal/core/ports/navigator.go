package ports

import (
	"context"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

// Navigator moves the client to a named view. The guard decides the final
// route from the authentication flag.
type Navigator interface {
	NavigateTo(ctx context.Context, name domain.RouteName, authenticated bool) (domain.Route, error)
	Current() domain.Route
}
