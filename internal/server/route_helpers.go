package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/ternarybob/storyteller/internal/handlers"
)

// RouteHandler is a function type for HTTP handlers
type RouteHandler func(http.ResponseWriter, *http.Request)

// methodRoutes maps HTTP methods to handlers
type methodRoutes map[string]RouteHandler

// routeByMethod dispatches on the request method.
// Unlisted methods get 405 with an Allow header naming the listed ones.
func routeByMethod(w http.ResponseWriter, r *http.Request, routes methodRoutes) {
	if handler, ok := routes[r.Method]; ok && handler != nil {
		handler(w, r)
		return
	}

	allowed := make([]string, 0, len(routes))
	for method, handler := range routes {
		if handler != nil {
			allowed = append(allowed, method)
		}
	}
	sort.Strings(allowed)
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	handlers.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// routeCollection serves a collection path: GET lists, POST creates
func routeCollection(w http.ResponseWriter, r *http.Request, list, create RouteHandler) {
	routeByMethod(w, r, methodRoutes{
		http.MethodGet:  list,
		http.MethodPost: create,
	})
}

// itemRoutes serves read-only resources at prefix{id} and their named
// sub-resources at prefix{id}/{action}. Anything deeper is not found.
type itemRoutes struct {
	prefix   string
	get      RouteHandler
	actions  map[string]RouteHandler
	notFound RouteHandler
}

func (ir itemRoutes) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, action, nested := strings.Cut(strings.TrimPrefix(r.URL.Path, ir.prefix), "/")
	if id == "" {
		ir.notFound(w, r)
		return
	}

	handler := ir.get
	if nested {
		var ok bool
		if handler, ok = ir.actions[action]; !ok {
			ir.notFound(w, r)
			return
		}
	}
	routeByMethod(w, r, methodRoutes{http.MethodGet: handler})
}
