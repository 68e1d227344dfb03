package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTicker struct {
	n    atomic.Int32
	last atomic.Value
}

func (c *countingTicker) Tick(ctx context.Context, now time.Time) {
	c.n.Add(1)
	c.last.Store(now)
}

func TestKeepAlive_DisabledWithoutInterval(t *testing.T) {
	tk := &countingTicker{}
	k := NewKeepAlive(0, tk, nil)

	assert.False(t, k.Start(context.Background()))
	assert.True(t, k.Next().IsZero())
	k.Stop()
	assert.Equal(t, int32(0), tk.n.Load())
}

func TestKeepAlive_TicksOnInterval(t *testing.T) {
	tk := &countingTicker{}
	k := NewKeepAlive(time.Second, tk, nil)

	require.True(t, k.Start(context.Background()))
	defer k.Stop()

	require.Eventually(t, func() bool { return !k.Next().IsZero() }, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return tk.n.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	last, ok := tk.last.Load().(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), last, 3*time.Second)
}

func TestKeepAlive_StopPreventsFurtherTicks(t *testing.T) {
	tk := &countingTicker{}
	k := NewKeepAlive(time.Second, tk, nil)
	require.True(t, k.Start(context.Background()))
	k.Stop()

	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, int32(0), tk.n.Load())
}
