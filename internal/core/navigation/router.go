package navigation

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

// Router implements ports.Navigator. Every navigation passes through the guard.
type Router struct {
	guard *Guard
	log   zerolog.Logger

	mu      sync.RWMutex
	current domain.Route
}

func NewRouter(guard *Guard, log zerolog.Logger) *Router {
	start, _ := guard.Lookup(domain.RouteLogin)
	return &Router{guard: guard, log: log, current: start}
}

func (r *Router) NavigateTo(_ context.Context, name domain.RouteName, authenticated bool) (domain.Route, error) {
	target, err := r.guard.Resolve(name, authenticated)
	if err != nil {
		return domain.Route{}, err
	}

	r.mu.Lock()
	r.current = target
	r.mu.Unlock()

	r.log.Debug().
		Str("requested", string(name)).
		Str("route", string(target.Name)).
		Str("title", target.DocumentTitle()).
		Msg("navigated")
	return target, nil
}

func (r *Router) Current() domain.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
