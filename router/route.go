package router

import (
	"net/http"
)

// Route pairs an endpoint string ("METHOD /path") with a handler and its
// middleware chain.
type Route struct {
	endpoint    string
	handler     http.Handler
	middlewares []func(http.Handler) http.Handler
	observers   []http.Handler
}

// NewRoute creates a Route for the given endpoint. The handler is attached
// with WithHandler or WithHandlerFunc.
func NewRoute(endpoint string) *Route {
	if endpoint == "" {
		panic("route endpoint cannot be empty")
	}
	return &Route{
		endpoint:    endpoint,
		middlewares: make([]func(http.Handler) http.Handler, 0),
		observers:   make([]http.Handler, 0),
	}
}

func (r *Route) Endpoint() string {
	return r.endpoint
}

func (r *Route) WithHandler(h http.Handler) *Route {
	r.handler = h
	return r
}

func (r *Route) WithHandlerFunc(h func(http.ResponseWriter, *http.Request)) *Route {
	r.handler = http.HandlerFunc(h)
	return r
}

// WithMiddleware adds one or more middlewares to the chain. Middlewares
// execute in the order they are given, from left to right:
//
//	.WithMiddleware(mw1, mw2, mw3)
//
// runs mw1 first, then mw2, then mw3, then the handler. This follows the
// same semantics as middleware chaining packages like Alice
// (github.com/justinas/alice) and matches the natural reading order.
func (r *Route) WithMiddleware(middlewares ...func(http.Handler) http.Handler) *Route {
	for _, mw := range middlewares {
		r.middlewares = append([]func(http.Handler) http.Handler{mw}, r.middlewares...)
	}
	return r
}

// WithMiddlewareChain prepends a chain of middlewares added in given order.
func (r *Route) WithMiddlewareChain(middlewares []func(http.Handler) http.Handler) *Route {
	return r.WithMiddleware(middlewares...)
}

// WithObservers adds handlers that run after the handler and middleware
// chain, typically for logging or metrics side effects. Observers must not
// write to the response as the main handler may have already sent headers.
func (r *Route) WithObservers(observers ...http.Handler) *Route {
	r.observers = append(r.observers, observers...)
	return r
}

// Handler returns the final handler with all middlewares and observers
// applied.
func (r *Route) Handler() http.Handler {
	if r.handler == nil {
		panic("route handler cannot be nil")
	}
	handler := r.handler

	for _, mw := range r.middlewares {
		handler = mw(handler)
	}

	if len(r.observers) == 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		handler.ServeHTTP(w, req)

		for _, obs := range r.observers {
			obs.ServeHTTP(w, req)
		}
	})
}
