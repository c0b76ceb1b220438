// Package httprouter adapts julienschmidt/httprouter to the router
// interface.
package httprouter

import (
	"context"
	"net/http"
	"strings"

	jshttprouter "github.com/julienschmidt/httprouter"

	"github.com/nidohq/nido/router"
)

type Router struct {
	rt *jshttprouter.Router
}

func New() router.Router {
	return &Router{rt: jshttprouter.New()}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

func (r *Router) Handle(path string, handler http.Handler) {
	r.rt.Handler("GET", path, handler)
}

// Register splits each endpoint into method and path and mounts the
// composed handler chain. Endpoints look like "POST /api/auth/signin";
// an endpoint without a method part panics, registration errors are
// programming errors.
func (r *Router) Register(routes ...*router.Route) {
	for _, route := range routes {
		method, path, ok := strings.Cut(route.Endpoint(), " ")
		if !ok {
			panic("endpoint missing method: " + route.Endpoint())
		}
		r.rt.Handler(method, path, route.Handler())
	}
}

// jsParams implements router.ParamGetter on top of the params httprouter
// stores in the request context.
type jsParams struct{}

func (js *jsParams) Get(ctx context.Context) router.Params {
	pms, _ := ctx.Value(jshttprouter.ParamsKey).(jshttprouter.Params)

	var params router.Params
	for _, v := range pms {
		params = append(params, router.Param{Key: v.Key, Value: v.Value})
	}
	return params
}

func NewParamGetter() router.ParamGetter {
	return &jsParams{}
}
