package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Route is one endpoint. Middlewares apply to this route only, first one
// outermost; the global chain is set up by the server.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

type Router struct {
	router *httprouter.Router
}

type ConfigRouter func(router *Router)

func WithRoutes(routes ...Route) ConfigRouter {
	return func(router *Router) {
		router.AddRoutes(routes...)
	}
}

// NotFound replies with the given handler for unknown paths.
func NotFound(handler http.Handler) ConfigRouter {
	return func(router *Router) {
		router.router.NotFound = handler
	}
}

// MethodNotAllowed replies with the given handler when the path exists under
// another method.
func MethodNotAllowed(handler http.Handler) ConfigRouter {
	return func(router *Router) {
		router.router.HandleMethodNotAllowed = true
		router.router.MethodNotAllowed = handler
	}
}

func New(configs ...ConfigRouter) Router {
	router := &Router{
		router: httprouter.New(),
	}
	// CORS preflight is answered by the middleware chain.
	router.router.HandleOPTIONS = false

	for _, config := range configs {
		config(router)
	}

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := route.Handler
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
	}
}
