package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEveryFiresUntilStopped(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	task := Every(5*time.Millisecond, func(time.Time) { calls.Add(1) })
	require.True(t, task.Active())

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	task.Stop()
	require.False(t, task.Active())

	after := calls.Load()
	time.Sleep(25 * time.Millisecond)
	require.Equal(t, after, calls.Load())
}

func TestStopIsIdempotent(t *testing.T) {
	t.Parallel()

	task := Every(time.Hour, func(time.Time) {})
	task.Stop()
	task.Stop()

	var nilTask *Task
	nilTask.Stop()
	require.False(t, nilTask.Active())
}

func TestNonPositivePeriodIsInert(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	task := Every(0, func(time.Time) { calls.Add(1) })
	require.False(t, task.Active())
	task.Stop()

	require.False(t, Every(time.Millisecond, nil).Active())
	require.Zero(t, calls.Load())
}
