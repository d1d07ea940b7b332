package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtulFalle/pictionary/internal/apperror"
)

func newTestRoom() *Room {
	room := NewRoom("ABC123", 8, 5)
	room.Players = []*Player{
		{ID: "p1", Name: "Alice", ConnID: "c1", IsHost: true},
		{ID: "p2", Name: "Bob", ConnID: "c2"},
		{ID: "p3", Name: "Carol", ConnID: "c3"},
	}
	return room
}

func TestRoomStatusMethods(t *testing.T) {
	t.Run("IsWaiting returns true when room status is waiting", func(t *testing.T) {
		// Given: a room with StatusWaiting
		room := &Room{Status: StatusWaiting}

		// Then: it should report waiting and nothing else
		assert.True(t, room.IsWaiting())
		assert.False(t, room.IsPlaying())
		assert.False(t, room.IsFinished())
	})

	t.Run("IsPlaying returns true when room status is playing", func(t *testing.T) {
		// Given: a room with StatusPlaying
		room := &Room{Status: StatusPlaying}

		// Then: it should report playing
		assert.True(t, room.IsPlaying())
	})

	t.Run("IsFinished returns true when room status is finished", func(t *testing.T) {
		// Given: a room with StatusFinished
		room := &Room{Status: StatusFinished}

		// Then: it should report finished
		assert.True(t, room.IsFinished())
	})
}

func TestRoom_BeginRound(t *testing.T) {
	t.Run("Marks exactly the round's drawer", func(t *testing.T) {
		// Given: a waiting room with three players
		room := newTestRoom()

		// When: a round starts with p2 drawing
		room.BeginRound(&Round{Number: 1, Word: "cat", DrawerID: "p2", TimeLimit: 60})

		// Then: the room is playing and only p2 carries the drawer flag
		require.True(t, room.IsPlaying())
		assert.Equal(t, 1, room.CurrentRound)

		drawers := 0
		for _, player := range room.Players {
			if player.IsDrawer {
				drawers++
				assert.Equal(t, "p2", player.ID)
			}
		}
		assert.Equal(t, 1, drawers)

		drawer, err := room.Drawer()
		require.NoError(t, err)
		assert.Equal(t, "p2", drawer.ID)
	})

	t.Run("Reassigns the drawer flag on the next round", func(t *testing.T) {
		// Given: a room where p2 drew the first round
		room := newTestRoom()
		room.BeginRound(&Round{Number: 1, Word: "cat", DrawerID: "p2", TimeLimit: 60})
		room.FinishRound()

		// When: p3 draws the second round
		room.BeginRound(&Round{Number: 2, Word: "dog", DrawerID: "p3", TimeLimit: 60})

		// Then: the flag moved entirely to p3
		assert.False(t, room.PlayerByID("p2").IsDrawer)
		assert.True(t, room.PlayerByID("p3").IsDrawer)
	})
}

func TestRoom_FinishRound(t *testing.T) {
	t.Run("Returns to waiting while rounds remain", func(t *testing.T) {
		// Given: a playing room on round 1 of 5
		room := newTestRoom()
		room.BeginRound(&Round{Number: 1, Word: "cat", DrawerID: "p1", TimeLimit: 60})

		// When: the round finishes
		gameOver := room.FinishRound()

		// Then: the room waits for the next round with no active round state
		assert.False(t, gameOver)
		assert.True(t, room.IsWaiting())
		assert.Nil(t, room.Round)
		for _, player := range room.Players {
			assert.False(t, player.IsDrawer)
		}
	})

	t.Run("Finishes the game after the final round", func(t *testing.T) {
		// Given: a playing room on its last configured round
		room := newTestRoom()
		room.TotalRounds = 1
		room.BeginRound(&Round{Number: 1, Word: "cat", DrawerID: "p1", TimeLimit: 60})

		// When: the round finishes
		gameOver := room.FinishRound()

		// Then: the game is over and the room is terminal
		assert.True(t, gameOver)
		assert.True(t, room.IsFinished())
		assert.Nil(t, room.Round)
	})
}

func TestRoom_Drawer(t *testing.T) {
	t.Run("Returns NoActiveRound outside a round", func(t *testing.T) {
		// Given: a waiting room
		room := newTestRoom()

		// When: asking for the drawer
		_, err := room.Drawer()

		// Then: there is none to return
		assert.ErrorIs(t, err, apperror.ErrNoActiveRound)
	})

	t.Run("Returns DrawerNotFound when the drawer left", func(t *testing.T) {
		// Given: a playing room whose drawer has been removed
		room := newTestRoom()
		room.BeginRound(&Round{Number: 1, Word: "cat", DrawerID: "p2", TimeLimit: 60})
		room.RemovePlayerByConn("c2")

		// When: asking for the drawer
		_, err := room.Drawer()

		// Then: the stale reference is reported
		assert.ErrorIs(t, err, apperror.ErrDrawerNotFound)
	})
}

func TestRoom_TopPlayer(t *testing.T) {
	t.Run("Picks the strictly highest score", func(t *testing.T) {
		// Given: players with distinct scores
		room := newTestRoom()
		room.Players[0].Score = 10
		room.Players[1].Score = 30
		room.Players[2].Score = 20

		// Then: the highest scorer wins
		assert.Equal(t, "p2", room.TopPlayer().ID)
	})

	t.Run("Breaks ties by join order", func(t *testing.T) {
		// Given: two players tied on top
		room := newTestRoom()
		room.Players[0].Score = 20
		room.Players[1].Score = 20
		room.Players[2].Score = 10

		// Then: the one who joined first wins the tie
		assert.Equal(t, "p1", room.TopPlayer().ID)
	})
}

func TestRoom_RemovePlayerByConn(t *testing.T) {
	t.Run("Promotes the first remaining player when the host leaves", func(t *testing.T) {
		// Given: a room whose host is p1
		room := newTestRoom()

		// When: the host's connection is removed
		removed, ok := room.RemovePlayerByConn("c1")

		// Then: p2 inherits the host flag and roster order is preserved
		require.True(t, ok)
		assert.Equal(t, "p1", removed.ID)
		require.Len(t, room.Players, 2)
		assert.True(t, room.Players[0].IsHost)
		assert.Equal(t, "p2", room.Players[0].ID)
		assert.Equal(t, "p3", room.Players[1].ID)
	})

	t.Run("Keeps the host when a non-host leaves", func(t *testing.T) {
		// Given: a room whose host is p1
		room := newTestRoom()

		// When: p3 leaves
		_, ok := room.RemovePlayerByConn("c3")

		// Then: p1 is still the only host
		require.True(t, ok)
		hosts := 0
		for _, player := range room.Players {
			if player.IsHost {
				hosts++
			}
		}
		assert.Equal(t, 1, hosts)
		assert.Equal(t, "p1", room.Host().ID)
	})

	t.Run("Removing an unknown connection is a no-op", func(t *testing.T) {
		// Given: a room with three players
		room := newTestRoom()

		// When: removing a connection that is not in the room
		removed, ok := room.RemovePlayerByConn("c9")

		// Then: nothing changed
		assert.False(t, ok)
		assert.Nil(t, removed)
		assert.Len(t, room.Players, 3)
	})

	t.Run("Removing the same connection twice only removes once", func(t *testing.T) {
		// Given: a room with three players
		room := newTestRoom()

		// When: the same connection leaves twice
		_, first := room.RemovePlayerByConn("c2")
		_, second := room.RemovePlayerByConn("c2")

		// Then: the second removal is a harmless no-op
		assert.True(t, first)
		assert.False(t, second)
		assert.Len(t, room.Players, 2)
	})
}

func TestRoom_Snapshot(t *testing.T) {
	t.Run("Never exposes the current word", func(t *testing.T) {
		// Given: a playing room with a secret word
		room := newTestRoom()
		room.BeginRound(&Round{Number: 1, Word: "cat", DrawerID: "p2", TimeLimit: 60})

		// When: taking a snapshot
		snapshot := room.Snapshot()

		// Then: the snapshot carries the drawer and timing but no word
		assert.Equal(t, "p2", snapshot.CurrentDrawerID)
		assert.Equal(t, 60, snapshot.RoundTime)
		assert.Equal(t, 1, snapshot.CurrentRound)
	})

	t.Run("Copies players instead of sharing them", func(t *testing.T) {
		// Given: a room snapshot
		room := newTestRoom()
		snapshot := room.Snapshot()

		// When: the live player mutates afterwards
		room.Players[0].Score = 50

		// Then: the snapshot still holds the old value
		assert.Equal(t, 0, snapshot.Players[0].Score)
	})
}
