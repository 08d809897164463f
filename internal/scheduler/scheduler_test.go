package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPruner struct {
	calls atomic.Int32
}

func (p *countingPruner) Prune() int {
	p.calls.Add(1)
	return 1
}

func (p *countingPruner) Len() int { return 0 }

func TestNewDefaultsInterval(t *testing.T) {
	s := New(&countingPruner{}, 0)
	assert.Equal(t, defaultInterval, s.interval)
}

func TestSchedulerRunsPrune(t *testing.T) {
	p := &countingPruner{}
	s := New(p, 50*time.Millisecond)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}
