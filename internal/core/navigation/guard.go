// Package navigation holds the route table, the guard that gates protected
// views on the session's authentication flag, and a router that tracks the
// current view.
package navigation

import (
	"github.com/99minutos/customer-desk/internal/core/domain"
)

// DefaultRoutes is the route table of the management front end.
var DefaultRoutes = []domain.Route{
	{Name: domain.RouteLogin, Path: "/", Title: "Login"},
	{Name: domain.RouteHome, Path: "/home", Title: "Dashboard", RequiresAuth: true},
}

// Guard decides which route is actually shown for a requested one.
type Guard struct {
	routes map[domain.RouteName]domain.Route
}

func NewGuard(routes []domain.Route) *Guard {
	g := &Guard{routes: make(map[domain.RouteName]domain.Route, len(routes))}
	for _, r := range routes {
		g.routes[r.Name] = r
	}
	return g
}

// Lookup returns the route registered under name.
func (g *Guard) Lookup(name domain.RouteName) (domain.Route, error) {
	r, ok := g.routes[name]
	if !ok {
		return domain.Route{}, domain.ErrRouteNotFound
	}
	return r, nil
}

// Resolve sends unauthenticated visitors of protected routes to the login
// view and authenticated visitors of the login view to home.
func (g *Guard) Resolve(name domain.RouteName, authenticated bool) (domain.Route, error) {
	r, err := g.Lookup(name)
	if err != nil {
		return domain.Route{}, err
	}
	switch {
	case r.RequiresAuth && !authenticated:
		return g.Lookup(domain.RouteLogin)
	case r.Name == domain.RouteLogin && authenticated:
		return g.Lookup(domain.RouteHome)
	}
	return r, nil
}

// Allows reports whether the route may be shown as requested.
func (g *Guard) Allows(name domain.RouteName, authenticated bool) bool {
	r, err := g.Lookup(name)
	if err != nil {
		return false
	}
	return !r.RequiresAuth || authenticated
}
