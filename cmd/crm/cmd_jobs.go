package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/crm/app/jobs"
	"github.com/shashiranjanraj/crm/config"
	"github.com/shashiranjanraj/crm/pkg/cache"
	"github.com/shashiranjanraj/crm/pkg/logger"
	"github.com/shashiranjanraj/crm/pkg/schedule"
	"github.com/shashiranjanraj/crm/pkg/storage"
)

// bootJobs wires the report's cache and archive disk. An unreachable Redis
// falls back to an in-process store.
func bootJobs(ctx context.Context, cmd *cobra.Command) (*jobs.Env, func(), error) {
	if err := config.Load(); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	storage.Connect(ctx)

	var store cache.Store
	cleanup := func() {}
	rdb, err := cache.Connect(ctx)
	if err != nil {
		logger.Warn("redis unavailable, reports cached in memory", "error", err)
		store = cache.NewMemory()
	} else {
		store = rdb
		cleanup = func() { _ = rdb.Close() }
	}

	env := jobs.NewEnv(store, storage.Default())
	env.Out = cmd.OutOrStdout()
	return env, cleanup, nil
}

// crm schedule:run
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Run the background jobs on their schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, cleanup, err := bootJobs(ctx, cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		s := schedule.New()
		if err := env.Schedule(s); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Registered scheduled tasks:")
		for _, t := range s.List() {
			fmt.Fprintln(out, "  •", t)
		}

		s.Start(ctx)
		<-ctx.Done()
		s.Wait()
		fmt.Fprintln(out, "Scheduler stopped.")
		return nil
	},
}

// crm job:run <name>
var jobRunCmd = &cobra.Command{
	Use:       "job:run <name>",
	Short:     "Run one background job once (" + strings.Join(jobs.Names(), ", ") + ")",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: jobs.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := bootJobs(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		return env.Run(cmd.Context(), args[0])
	},
}
