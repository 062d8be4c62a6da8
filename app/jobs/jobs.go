// Package jobs holds the CRM background jobs. Each job is a client of the
// GraphQL endpoint and appends lines to its own log file.
package jobs

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/shashiranjanraj/crm/config"
	"github.com/shashiranjanraj/crm/pkg/cache"
	"github.com/shashiranjanraj/crm/pkg/logger"
	"github.com/shashiranjanraj/crm/pkg/metrics"
	"github.com/shashiranjanraj/crm/pkg/schedule"
	"github.com/shashiranjanraj/crm/pkg/storage"
)

const (
	Heartbeat      = "heartbeat"
	LowStock       = "low-stock"
	OrderReminders = "order-reminders"
	Report         = "report"
)

// LogFiles are the append-only files the jobs write to.
type LogFiles struct {
	Heartbeat      string
	LowStock       string
	OrderReminders string
	Report         string
}

// Env is everything a job run needs. Cache and Disk are optional.
type Env struct {
	Client *Client
	Cache  cache.Store
	Disk   storage.Disk
	Logs   LogFiles
	Out    io.Writer
	Now    func() time.Time
}

// NewEnv builds an Env from configuration.
func NewEnv(store cache.Store, disk storage.Disk) *Env {
	return &Env{
		Client: NewClient(config.GraphQLURL()),
		Cache:  store,
		Disk:   disk,
		Logs: LogFiles{
			Heartbeat:      config.HeartbeatLog(),
			LowStock:       config.LowStockLog(),
			OrderReminders: config.OrderRemindersLog(),
			Report:         config.ReportLog(),
		},
		Out: os.Stdout,
		Now: time.Now,
	}
}

type definition struct {
	run func(*Env, context.Context) error
	// fatal jobs return their error so an external scheduler can retry.
	fatal bool
	// every registers the job's schedule.
	every func(*schedule.Scheduler) *schedule.Schedule
}

var registry = map[string]definition{
	Heartbeat: {
		run:   (*Env).heartbeat,
		every: func(s *schedule.Scheduler) *schedule.Schedule { return s.Every(5).Minutes() },
	},
	LowStock: {
		run:   (*Env).lowStock,
		every: func(s *schedule.Scheduler) *schedule.Schedule { return s.Every(12).Hours() },
	},
	OrderReminders: {
		run:   (*Env).orderReminders,
		every: func(s *schedule.Scheduler) *schedule.Schedule { return s.Cron("0 8 * * *") },
	},
	Report: {
		run:   (*Env).report,
		fatal: true,
		every: func(s *schedule.Scheduler) *schedule.Schedule { return s.Cron("0 6 * * 1") },
	},
}

// Names lists the registered jobs.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Run executes one job once and records it in metrics. Only the report
// job returns its failure.
func (e *Env) Run(ctx context.Context, name string) error {
	def, ok := registry[name]
	if !ok {
		return fmt.Errorf("jobs: unknown job %q", name)
	}

	start := time.Now()
	err := def.run(e, ctx)
	metrics.RecordJob(name, err, start)

	if err != nil {
		logger.WithCtx(ctx).Error("job failed", "job", name, "error", err)
		if def.fatal {
			return err
		}
		return nil
	}
	logger.WithCtx(ctx).Debug("job finished", "job", name, "duration", time.Since(start).String())
	return nil
}

// Schedule registers every job on s. Runs never overlap with themselves.
func (e *Env) Schedule(s *schedule.Scheduler) error {
	for _, name := range Names() {
		name := name
		err := registry[name].every(s).
			Name(name).
			WithoutOverlapping().
			Run(func(ctx context.Context) { _ = e.Run(ctx, name) })
		if err != nil {
			return fmt.Errorf("jobs: schedule %s: %w", name, err)
		}
	}
	return nil
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// open returns the file logger for a job. dashed selects the
// "<time> - <msg>" layout; otherwise the heartbeat layout is used.
func (e *Env) open(path string, dashed bool) (*logger.FileLogger, error) {
	opts := logger.LineOptions{TimeLayout: logger.LayoutHeartbeat, Separator: " ", Now: e.now}
	if dashed {
		opts = logger.LineOptions{TimeLayout: logger.LayoutDashed, Separator: " - ", Now: e.now}
	}
	return logger.NewFileLogger(path, opts)
}

func (e *Env) out() io.Writer {
	if e.Out == nil {
		return io.Discard
	}
	return e.Out
}
