package app

import (
	"context"

	"github.com/shashiranjanraj/crm/internal/server"
)

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (a *Application) Serve(ctx context.Context, addr string) error {
	return server.Start(ctx, addr, a.Handler())
}
