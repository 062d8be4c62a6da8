// Package app assembles the HTTP application: global middleware, the
// metrics endpoint and the registered routes.
//
//	a := app.New().Routes(routes.API(schema, database.DB))
//	err := a.Serve(ctx, ":"+config.AppPort())
package app

import (
	"github.com/shashiranjanraj/crm/pkg/router"
)

// Application collects route registrations and builds the HTTP handler.
type Application struct {
	routesFns []func(*router.Router)
}

func New() *Application {
	return &Application{}
}

// Routes adds a route-registration callback. Callbacks run in order.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// RouteTable returns every route the application would serve.
func (a *Application) RouteTable() []router.RouteInfo {
	return a.router().Routes()
}
