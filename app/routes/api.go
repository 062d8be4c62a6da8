// Package routes mounts the CRM endpoints.
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/config"
	gql "github.com/shashiranjanraj/crm/pkg/graphql"
	"github.com/shashiranjanraj/crm/pkg/logger"
	"github.com/shashiranjanraj/crm/pkg/middleware"
	"github.com/shashiranjanraj/crm/pkg/response"
	"github.com/shashiranjanraj/crm/pkg/router"
)

// API returns the route registration for the GraphQL endpoint and the
// health probe. db may be nil when only the route table is needed.
func API(schema graphql.Schema, db *gorm.DB) func(*router.Router) {
	return func(r *router.Router) {
		limiter := middleware.NewRateLimiter(config.RateLimit(), time.Minute)
		if err := limiter.TrustProxies(config.TrustedProxies()...); err != nil {
			logger.Warn("routes: ignoring TRUSTED_PROXIES", "error", err)
		}
		h := gql.Handler(schema)

		r.Post("/graphql", "graphql", h, limiter.Middleware)
		r.Get("/graphql", "graphql.get", h, limiter.Middleware)
		r.Get("/health", "health", health(db))
	}
}

func health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			response.Error(w, http.StatusServiceUnavailable, "database not connected")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logger.WithCtx(ctx).Warn("health: database unreachable", "error", err)
			response.Error(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
