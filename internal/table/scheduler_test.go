package table

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerBlocksWhileInFlight(t *testing.T) {
	t.Parallel()
	clk := quartz.NewMock(t)
	s := NewScheduler(clk, "test")

	fired := make(chan uint64, 2)
	require.True(t, s.Schedule(time.Second, func(id uint64) { fired <- id }))
	assert.False(t, s.Schedule(time.Second, func(id uint64) { fired <- id }))

	advance(t, clk)
	id := <-fired
	assert.True(t, s.Claim(id))
	assert.False(t, s.Claim(id), "claimed twice")
	assert.False(t, s.InFlight())

	require.True(t, s.Schedule(time.Second, func(id uint64) { fired <- id }))
	s.Cancel()
	assert.False(t, s.Claim(id+1))
	_, pending := clk.Peek()
	assert.False(t, pending)
}
