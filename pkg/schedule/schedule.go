// Package schedule is the in-process task scheduler behind `crm schedule:run`.
//
// Usage:
//
//	s := schedule.New()
//	s.Every(5).Minutes().Name("heartbeat").Run(heartbeat)
//	s.Every(12).Hours().Name("low-stock").Run(restock)
//	s.Cron("0 8 * * *").Name("order-reminders").Run(remind)
//
//	s.Start(ctx) // dispatches in the background until ctx is done
package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/crm/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func(ctx context.Context)

// entry represents a single scheduled job.
type entry struct {
	id        string
	interval  time.Duration
	cronExpr  string // "" unless using Cron()
	task      Task
	lastRun   time.Time
	running   bool // overlap guard
	noOverlap bool
	mu        sync.Mutex
}

// Scheduler owns a set of entries and dispatches them once per second.
type Scheduler struct {
	mu      sync.Mutex
	entries []*entry
	wg      sync.WaitGroup
}

func New() *Scheduler {
	return &Scheduler{}
}

// Schedule is a fluent builder for a single entry before it is registered.
type Schedule struct {
	s *Scheduler
	e *entry
}

// Every starts a fluent builder with n units.
func (s *Scheduler) Every(n int) *FreqBuilder { return &FreqBuilder{s: s, n: n} }

// Cron schedules using a 5-field cron expression (min hour dom mon dow),
// evaluated in local time. A matching minute fires once.
func (s *Scheduler) Cron(expr string) *Schedule {
	return &Schedule{s: s, e: &entry{cronExpr: expr}}
}

// ------------------- Fluent frequency builder -------------------

type FreqBuilder struct {
	s *Scheduler
	n int
}

func (f *FreqBuilder) every(unit time.Duration) *Schedule {
	return &Schedule{s: f.s, e: &entry{interval: time.Duration(f.n) * unit}}
}

func (f *FreqBuilder) Minutes() *Schedule { return f.every(time.Minute) }
func (f *FreqBuilder) Hours() *Schedule   { return f.every(time.Hour) }

// ------------------- Schedule chainable options -------------------

// WithoutOverlapping prevents a new run if the previous one is still executing.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Name gives the entry a human-readable identifier for logging.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task. An invalid cron expression is an error.
func (s *Schedule) Run(fn Task) error {
	if s.e.cronExpr != "" {
		if err := validateCron(s.e.cronExpr); err != nil {
			return err
		}
	}
	s.e.task = fn

	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if s.e.id == "" {
		s.e.id = fmt.Sprintf("task-%d", len(s.s.entries)+1)
	}
	s.s.entries = append(s.s.entries, s.e)
	return nil
}

// ------------------- Scheduler loop -------------------

// Start begins the scheduler loop in the background.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
	logger.Info("schedule: scheduler started")
}

// Wait blocks until every dispatched task has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	s.mu.Lock()
	current := make([]*entry, len(s.entries))
	copy(current, s.entries)
	s.mu.Unlock()

	for _, e := range current {
		if isDue(e, now) {
			s.dispatch(ctx, e, now)
		}
	}
}

func isDue(e *entry, now time.Time) bool {
	e.mu.Lock()
	last := e.lastRun
	e.mu.Unlock()

	if e.cronExpr != "" {
		if !last.IsZero() && last.Truncate(time.Minute).Equal(now.Truncate(time.Minute)) {
			return false
		}
		return matchCron(e.cronExpr, now)
	}
	if last.IsZero() {
		return true // first run
	}
	return now.Sub(last) >= e.interval
}

func (s *Scheduler) dispatch(ctx context.Context, e *entry, now time.Time) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = now
	e.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
		}()

		logger.Info("schedule: running task", "id", e.id)
		e.task(ctx)
	}()
}

// ------------------- Minimal cron parser -------------------
// Supports 5-field cron: minute hour dom month dow
// Each field: * | number | */step | number-number | comma-separated list

var cronBounds = [5][2]int{{0, 59}, {0, 23}, {1, 31}, {1, 12}, {0, 6}}

func validateCron(expr string) error {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return fmt.Errorf("schedule: cron %q: want 5 fields, got %d", expr, len(fields))
	}
	for i, f := range fields {
		for _, part := range strings.Split(f, ",") {
			if _, err := parsePart(part, cronBounds[i][0], cronBounds[i][1]); err != nil {
				return fmt.Errorf("schedule: cron %q: %w", expr, err)
			}
		}
	}
	return nil
}

func matchCron(expr string, t time.Time) bool {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return false
	}
	vals := [5]int{t.Minute(), t.Hour(), t.Day(), int(t.Month()), int(t.Weekday())}
	for i, f := range fields {
		if !matchField(f, vals[i], cronBounds[i][0], cronBounds[i][1]) {
			return false
		}
	}
	return true
}

func matchField(field string, val, lo, hi int) bool {
	for _, part := range strings.Split(field, ",") {
		m, err := parsePart(part, lo, hi)
		if err == nil && m(val) {
			return true
		}
	}
	return false
}

func parsePart(part string, lo, hi int) (func(int) bool, error) {
	num := func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil || n < lo || n > hi {
			return 0, fmt.Errorf("field value %q out of range %d-%d", s, lo, hi)
		}
		return n, nil
	}

	switch {
	case part == "*":
		return func(int) bool { return true }, nil
	case strings.HasPrefix(part, "*/"):
		step, err := strconv.Atoi(part[2:])
		if err != nil || step <= 0 {
			return nil, fmt.Errorf("bad step %q", part)
		}
		return func(v int) bool { return (v-lo)%step == 0 }, nil
	case strings.Contains(part, "-"):
		a, b, _ := strings.Cut(part, "-")
		from, err := num(a)
		if err != nil {
			return nil, err
		}
		to, err := num(b)
		if err != nil {
			return nil, err
		}
		return func(v int) bool { return v >= from && v <= to }, nil
	default:
		n, err := num(part)
		if err != nil {
			return nil, err
		}
		return func(v int) bool { return v == n }, nil
	}
}

// List returns all registered entries (for CLI display).
func (s *Scheduler) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		freq := e.cronExpr
		if freq == "" {
			freq = e.interval.String()
		}
		out = append(out, fmt.Sprintf("%s  [%s]", e.id, freq))
	}
	return out
}
