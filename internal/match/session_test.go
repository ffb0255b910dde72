package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
)

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("s1", 2)

	for i := 0; i < 3; i++ {
		s.Send(MoveRejectedEvent{Cell: i})
	}

	assert.Equal(t, uint64(1), s.Dropped())
	first := (<-s.Events()).(MoveRejectedEvent)
	second := (<-s.Events()).(MoveRejectedEvent)
	assert.Equal(t, 1, first.Cell)
	assert.Equal(t, 2, second.Cell)
}

func TestChannelSessionKeepsMatchResults(t *testing.T) {
	s := NewChannelSession("s1", 2)

	s.Send(MatchEndedEvent{Winner: blink.Seat1, Tally: Tally{Player1: 1}})
	s.Send(SnapshotEvent{})
	s.Send(SnapshotEvent{})
	s.Send(SnapshotEvent{})

	assert.Equal(t, uint64(2), s.Dropped())
	require.Len(t, s.Events(), 2)
	ended, ok := (<-s.Events()).(MatchEndedEvent)
	require.True(t, ok, "match result was dropped")
	assert.Equal(t, blink.Seat1, ended.Winner)
	assert.IsType(t, SnapshotEvent{}, <-s.Events())
}

func TestChannelSessionClose(t *testing.T) {
	s := NewChannelSession("s1", 4)
	s.Close()
	s.Close()

	s.Send(MoveRejectedEvent{})
	assert.Len(t, s.Events(), 0)

	select {
	case <-s.Done():
	default:
		t.Fatal("Done() not closed")
	}
}

func TestSessionRegistryLimit(t *testing.T) {
	r := NewSessionRegistry(1)

	require.NoError(t, r.Register(NewChannelSession("a", 1)))
	assert.ErrorIs(t, r.Register(NewChannelSession("b", 1)), ErrServerFull)
	assert.Equal(t, 1, r.Count())

	r.Unregister("a")
	require.NoError(t, r.Register(NewChannelSession("b", 1)))
	_, ok := r.Get("b")
	assert.True(t, ok)
}

func TestTally(t *testing.T) {
	var tally Tally
	tally.Add(blink.Seat1)
	tally.Add(blink.Seat2)
	tally.Add(blink.Seat2)
	tally.Add(blink.NoSeat)

	assert.Equal(t, 1, tally.Wins(blink.Seat1))
	assert.Equal(t, 2, tally.Wins(blink.Seat2))
	assert.Equal(t, 0, tally.Wins(blink.NoSeat))
}

func TestNewMatchIDUnique(t *testing.T) {
	assert.NotEqual(t, NewMatchID(), NewMatchID())
}
