package revenue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunInBackground_StopWaitsForJob(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	started := make(chan struct{})
	var finished atomic.Bool

	runInBackground(lc, zap.NewNop().Sugar(), "slow job", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		// still touching the pool after cancellation
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
		return ctx.Err()
	})

	lc.RequireStart()
	<-started
	lc.RequireStop()
	require.True(t, finished.Load())
}

func TestRunInBackground_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	lc := fxtest.NewLifecycle(t)

	runInBackground(lc, zap.New(core).Sugar(), "revenue share backfill", func(context.Context) error {
		return errors.New("relation \"payment\" does not exist")
	})

	lc.RequireStart()
	require.Eventually(t, func() bool {
		return logs.FilterMessage("revenue share backfill failed").Len() == 1
	}, time.Second, 5*time.Millisecond)
	lc.RequireStop()
}
