package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// pattern returns the ServeMux pattern for the route under prefix.
func (r Route) pattern(prefix string) string {
	return r.Method + " " + prefix + r.Pattern
}
