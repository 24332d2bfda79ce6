// Package routes provides HTTP route registration and handler building.
package routes

import (
	"log/slog"
	"net/http"
)

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes with a common prefix.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}

// System collects routes and groups and builds the final handler.
type System struct {
	routes []Route
	groups []Group
	logger *slog.Logger
}

// New creates a route system with the specified logger.
func New(logger *slog.Logger) *System {
	return &System{
		logger: logger,
		routes: []Route{},
		groups: []Group{},
	}
}

// RegisterRoute adds a route to the route system.
func (s *System) RegisterRoute(route Route) {
	s.routes = append(s.routes, route)
}

// RegisterGroup adds a route group to the route system.
func (s *System) RegisterGroup(group Group) {
	s.groups = append(s.groups, group)
}

// Build constructs an http.Handler from all registered routes and groups.
func (s *System) Build() http.Handler {
	mux := http.NewServeMux()

	for _, route := range s.routes {
		s.handle(mux, route.Method, route.Pattern, route.Handler)
	}

	for _, group := range s.groups {
		s.registerGroup(mux, "", group)
	}

	return mux
}

func (s *System) registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		s.handle(mux, route.Method, fullPrefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		s.registerGroup(mux, fullPrefix, child)
	}
}

func (s *System) handle(mux *http.ServeMux, method, pattern string, handler http.HandlerFunc) {
	mux.HandleFunc(method+" "+pattern, handler)
	s.logger.Debug("route registered", "method", method, "pattern", pattern)
}
