package app

import (
	"net/http"

	"github.com/shashiranjanraj/crm/pkg/metrics"
	"github.com/shashiranjanraj/crm/pkg/middleware"
	"github.com/shashiranjanraj/crm/pkg/reqid"
	"github.com/shashiranjanraj/crm/pkg/response"
	"github.com/shashiranjanraj/crm/pkg/router"
)

// router builds the middleware stack and mounts every route. Order,
// outermost first: metrics, recovery, request id, logger, CORS.
func (a *Application) router() *router.Router {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}
	return r
}

// Handler returns the assembled http.Handler.
func (a *Application) Handler() http.Handler {
	return a.router().Handler()
}
