package sched

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimClock_AlarmJumps(t *testing.T) {
	c := NewSimClock()

	assert.False(t, c.SetAlarm(0), "past alarm must not arm")
	assert.True(t, c.SetAlarm(250*time.Millisecond))

	require.NoError(t, c.WaitForEvent(context.Background()))
	assert.Equal(t, 250*time.Millisecond, c.Now())

	_, armed := c.Armed()
	assert.False(t, armed)
}

func TestSimClock_EventBeforeAlarm(t *testing.T) {
	c := NewSimClock()
	require.True(t, c.SetAlarm(time.Second))

	c.SendEvent()
	require.NoError(t, c.WaitForEvent(context.Background()))
	assert.Equal(t, time.Duration(0), c.Now(), "event must not advance time")

	at, armed := c.Armed()
	assert.True(t, armed)
	assert.Equal(t, time.Second, at)
}

func TestSimClock_BlocksUntilCancelled(t *testing.T) {
	c := NewSimClock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.WaitForEvent(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSimClock_Advance(t *testing.T) {
	c := NewSimClock()
	require.True(t, c.SetAlarm(10*time.Millisecond))

	c.Advance(5 * time.Millisecond)
	_, armed := c.Armed()
	assert.True(t, armed)

	c.Advance(5 * time.Millisecond)
	_, armed = c.Armed()
	assert.False(t, armed)

	require.NoError(t, c.WaitForEvent(context.Background()))
	assert.Equal(t, 10*time.Millisecond, c.Now())
}

func TestRealClock(t *testing.T) {
	c := NewRealClock()
	defer c.Stop()

	assert.False(t, c.SetAlarm(0))

	// Sticky event.
	c.SendEvent()
	require.NoError(t, c.WaitForEvent(context.Background()))

	require.True(t, c.SetAlarm(c.Now()+5*time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.WaitForEvent(ctx))
	assert.GreaterOrEqual(t, c.Now(), 5*time.Millisecond)
}
