package router

import (
	"context"
	"net/http"
)

// Router registers routes and serves HTTP. Implementations adapt a concrete
// mux (julienschmidt/httprouter in production) to the endpoint strings used
// in config, "METHOD /path".
type Router interface {
	http.Handler

	// Handle registers a plain handler for GET requests on path.
	Handle(path string, handler http.Handler)

	// Register adds a set of routes, each carrying its own middleware chain.
	Register(routes ...*Route)
}

// Param is a single named path parameter.
type Param struct {
	Key   string
	Value string
}

type Params []Param

// ByName returns the value of the first parameter with the given name, or
// the empty string.
func (ps Params) ByName(name string) string {
	for _, p := range ps {
		if p.Key == name {
			return p.Value
		}
	}
	return ""
}

// ParamGetter extracts path parameters from a request context, decoupling
// handlers from the concrete mux implementation.
type ParamGetter interface {
	Get(ctx context.Context) Params
}
