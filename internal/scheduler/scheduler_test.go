package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashrwatshukla/StockXpert/internal/orchestrator"
	"github.com/shashrwatshukla/StockXpert/internal/view"
)

type countingRefresher struct {
	n   atomic.Int32
	err error
}

func (c *countingRefresher) Refresh(context.Context) error {
	c.n.Add(1)
	return c.err
}

type countingValuer struct {
	n atomic.Int32
}

func (c *countingValuer) RefreshValuations(context.Context) (view.Valuation, error) {
	c.n.Add(1)
	return view.Valuation{Total: "₹0.00"}, nil
}

func TestRegisterAll(t *testing.T) {
	s := NewScheduler(context.Background(), &countingRefresher{}, &countingValuer{}, zerolog.Nop())
	require.NoError(t, s.RegisterAll("0 */5 * * * *", ""))
	assert.Len(t, s.Cron.Entries(), 1)

	require.NoError(t, s.RegisterAll("", "0 0 * * * *"))
	assert.Len(t, s.Cron.Entries(), 2)

	assert.Error(t, s.RegisterAll("every minute", ""))
}

func TestJobsRun(t *testing.T) {
	r := &countingRefresher{}
	v := &countingValuer{}
	s := NewScheduler(context.Background(), r, v, zerolog.Nop())
	require.NoError(t, s.RegisterAll("* * * * * *", "* * * * * *"))

	s.Start()
	assert.Eventually(t, func() bool {
		return r.n.Load() > 0 && v.n.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}

func TestTasksTolerateErrors(t *testing.T) {
	r := &countingRefresher{err: orchestrator.ErrNoTicker}
	s := NewScheduler(context.Background(), r, &countingValuer{}, zerolog.Nop())
	s.RefreshTask()
	r.err = errors.New("boom")
	s.RefreshTask()
	s.ValuationTask()
	assert.Equal(t, int32(2), r.n.Load())
}
