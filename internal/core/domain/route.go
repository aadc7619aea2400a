package domain

// RouteName identifies a navigable view.
type RouteName string

const (
	RouteLogin RouteName = "login"
	RouteHome  RouteName = "home"
)

// Route describes a view and whether it needs an authenticated session.
type Route struct {
	Name         RouteName `json:"name"`
	Path         string    `json:"path"`
	Title        string    `json:"title"`
	RequiresAuth bool      `json:"requiresAuth"`
}

// DocumentTitle is the browser title rendered for the route.
func (r Route) DocumentTitle() string {
	return r.Title + " | Management System"
}
