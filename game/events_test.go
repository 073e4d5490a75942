package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLogKeepsNewestInOrder(t *testing.T) {
	var l eventLog
	for i := range maxPendingEvents + 10 {
		l.push(Event{Kind: EventGroan, Value: float64(i)})
	}

	out := l.drain()
	require.Len(t, out, maxPendingEvents)
	assert.Equal(t, 10, l.dropped)
	for i, e := range out {
		require.Equal(t, float64(i+10), e.Value, "event %d", i)
	}

	assert.Nil(t, l.drain())

	l.push(Event{Kind: EventKill, Value: 1})
	l.push(Event{Kind: EventKill, Value: 2})
	out = l.drain()
	require.Len(t, out, 2)
	assert.Equal(t, 1.0, out[0].Value)
	assert.Equal(t, 2.0, out[1].Value)
	assert.Equal(t, 10, l.dropped)
}
