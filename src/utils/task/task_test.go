package task

import (
	"errors"
	"testing"
	"time"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/atomic"

	"github.com/stretchr/testify/require"
)

func TestStartStop(t *testing.T) {
	started := make(chan struct{})

	var task *Task
	task = NewTask(config.Default(), "test").
		WithSubtaskFunc(func() error {
			close(started)
			<-task.StopChannel
			return nil
		})

	require.Nil(t, task.Start())
	<-started

	task.Stop()
	require.True(t, task.IsStopping.Load())

	select {
	case <-task.Ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("task context not cancelled")
	}
}

func TestPeriodicSubtaskRunsImmediately(t *testing.T) {
	runs := atomic.NewInt64(0)

	task := NewTask(config.Default(), "test").
		WithPeriodicSubtaskFunc(time.Hour, func() error {
			runs.Inc()
			return nil
		})

	require.Nil(t, task.Start())

	require.Eventually(t, func() bool {
		return runs.Load() == 1
	}, time.Second, 10*time.Millisecond)

	task.StopWait()
	require.EqualValues(t, 1, runs.Load())
}

func TestPeriodicSubtaskIsSingleFlight(t *testing.T) {
	var inFlight, maxInFlight atomic.Int64

	task := NewTask(config.Default(), "test").
		WithPeriodicSubtaskFunc(time.Millisecond, func() error {
			current := inFlight.Inc()
			defer inFlight.Dec()

			for {
				stored := maxInFlight.Load()
				if current <= stored || maxInFlight.CompareAndSwap(stored, current) {
					break
				}
			}

			// Longer than the period, overlapping runs would stack up
			time.Sleep(10 * time.Millisecond)
			return nil
		})

	require.Nil(t, task.Start())
	time.Sleep(100 * time.Millisecond)
	task.StopWait()

	require.EqualValues(t, 1, maxInFlight.Load())
}

func TestOnAfterStopRuns(t *testing.T) {
	stopped := atomic.NewBool(false)

	task := NewTask(config.Default(), "test").
		WithSubtaskFunc(func() error {
			return nil
		}).
		WithOnAfterStop(func() {
			stopped.Store(true)
		})

	require.Nil(t, task.Start())
	task.StopWait()

	require.Eventually(t, stopped.Load, time.Second, 10*time.Millisecond)
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0

	err := NewRetry().
		WithMaxElapsedTime(time.Second).
		WithMaxInterval(time.Millisecond).
		Run(func() error {
			attempts++
			if attempts < 3 {
				return errors.New("try again")
			}
			return nil
		})

	require.Nil(t, err)
	require.Equal(t, 3, attempts)
}

func TestRetryOnErrorCanStop(t *testing.T) {
	permanent := errors.New("bad input")
	attempts := 0

	err := NewRetry().
		WithMaxElapsedTime(time.Second).
		WithMaxInterval(time.Millisecond).
		WithOnError(func(err error, isDurationAcceptable bool) error {
			return backoff.Permanent(err)
		}).
		Run(func() error {
			attempts++
			return permanent
		})

	require.ErrorIs(t, err, permanent)
	require.Equal(t, 1, attempts)
}
