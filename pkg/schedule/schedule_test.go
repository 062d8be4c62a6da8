package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCron(t *testing.T) {
	monday6am := time.Date(2025, 1, 6, 6, 0, 0, 0, time.UTC)
	tuesday6am := monday6am.Add(24 * time.Hour)

	assert.True(t, matchCron("0 6 * * 1", monday6am))
	assert.False(t, matchCron("0 6 * * 1", tuesday6am))
	assert.False(t, matchCron("0 6 * * 1", monday6am.Add(time.Minute)))
	assert.True(t, matchCron("0 8 * * *", time.Date(2025, 3, 9, 8, 0, 30, 0, time.UTC)))
	assert.True(t, matchCron("*/15 * * * *", time.Date(2025, 3, 9, 8, 45, 0, 0, time.UTC)))
	assert.True(t, matchCron("0 6 * * 1-5", tuesday6am))
	assert.True(t, matchCron("0,30 * * * *", time.Date(2025, 3, 9, 8, 30, 0, 0, time.UTC)))
	assert.False(t, matchCron("0 6 * *", monday6am))
}

func TestRunRejectsBadCron(t *testing.T) {
	s := New()
	assert.Error(t, s.Cron("61 * * * *").Run(func(context.Context) {}))
	assert.Error(t, s.Cron("* * *").Run(func(context.Context) {}))
	assert.Empty(t, s.List())
}

func TestCronFiresOncePerMinute(t *testing.T) {
	s := New()
	var runs int32
	require.NoError(t, s.Cron("0 8 * * *").Name("reminders").Run(func(context.Context) {
		atomic.AddInt32(&runs, 1)
	}))

	base := time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		s.tick(context.Background(), base.Add(time.Duration(i)*time.Second))
		s.Wait()
	}
	s.tick(context.Background(), base.Add(time.Minute))
	s.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&runs))
}

func TestIntervalRunsImmediatelyThenWaits(t *testing.T) {
	s := New()
	var runs int32
	require.NoError(t, s.Every(5).Minutes().Name("heartbeat").Run(func(context.Context) {
		atomic.AddInt32(&runs, 1)
	}))

	now := time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)
	s.tick(context.Background(), now)
	s.Wait()
	s.tick(context.Background(), now.Add(4*time.Minute))
	s.Wait()
	s.tick(context.Background(), now.Add(5*time.Minute))
	s.Wait()

	assert.EqualValues(t, 2, atomic.LoadInt32(&runs))
	assert.Equal(t, []string{"heartbeat  [5m0s]"}, s.List())
}

func TestPanicIsRecovered(t *testing.T) {
	s := New()
	require.NoError(t, s.Every(1).Minutes().Run(func(context.Context) { panic("boom") }))

	s.tick(context.Background(), time.Now())
	s.Wait()
	assert.Equal(t, []string{"task-1  [1m0s]"}, s.List())
}
