package logger_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/crm/pkg/logger"
)

var fixed = time.Date(2026, 3, 9, 8, 5, 7, 0, time.Local)

func TestLineHandler_DashedLayout(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewLineHandler(&buf, logger.LineOptions{
		TimeLayout: logger.LayoutDashed,
		Separator:  " - ",
		Now:        func() time.Time { return fixed },
	}))

	log.Info("Report: 3 customers, 1 orders, 1499.98 revenue")

	assert.Equal(t, "2026-03-09 08:05:07 - Report: 3 customers, 1 orders, 1499.98 revenue\n", buf.String())
}

func TestLineHandler_HeartbeatLayout(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewLineHandler(&buf, logger.LineOptions{
		TimeLayout: logger.LayoutHeartbeat,
		Separator:  " ",
		Now:        func() time.Time { return fixed },
	}))

	log.Info("CRM is alive")

	assert.Equal(t, "09/03/2026-08:05:07 CRM is alive\n", buf.String())
}

func TestLineHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewLineHandler(&buf, logger.LineOptions{})).
		With("job", "report").
		WithGroup("result")

	log.Info("done", "orders", 2)

	assert.Equal(t, "done job=report result.orders=2\n", buf.String())
}

func TestLineHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewLineHandler(&buf, logger.LineOptions{Level: slog.LevelWarn}))

	log.Info("hidden")
	log.Error("shown")

	assert.Equal(t, "shown\n", buf.String())
}

func TestNewFileLogger_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")

	for i := 0; i < 2; i++ {
		fl, err := logger.NewFileLogger(path, logger.LineOptions{})
		require.NoError(t, err)
		fl.Info("tick")
		require.NoError(t, fl.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tick\ntick\n", string(data))
}
