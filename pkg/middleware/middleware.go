// Package middleware provides the HTTP middleware shared by gallery modules:
// request ids, CORS, and request logging, plus an ordered stack to apply them.
package middleware

import "net/http"

// Func wraps an http.Handler.
type Func = func(http.Handler) http.Handler

// System manages an ordered stack of HTTP middleware. The first middleware
// added is the outermost.
type System interface {
	Use(mw ...Func)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	fns []Func
}

// New creates an empty middleware System.
func New() System {
	return &stack{}
}

func (s *stack) Use(mw ...Func) {
	s.fns = append(s.fns, mw...)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	return Chain(handler, s.fns...)
}

// Chain wraps handler so that mw[0] runs first.
func Chain(handler http.Handler, mw ...Func) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}
