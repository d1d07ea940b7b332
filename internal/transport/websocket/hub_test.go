package websocket

import (
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestHub_Unregister(t *testing.T) {
	t.Run("Closes the send channel and drops later sends", func(t *testing.T) {
		// Given: a registered connection sitting in a room
		hub := NewHub(testLogger())
		client := newClient("conn-a", nil, testLogger())
		hub.register(client)
		hub.Join("AB12CD", "conn-a")

		// When: the connection is torn down
		hub.unregister("conn-a")

		// Then: the write pump's channel is closed
		_, open := <-client.send
		require.False(t, open)

		// Then: addressed and room sends to the gone connection are dropped
		hub.SendTo("conn-a", "room_updated", nil)
		hub.Broadcast("AB12CD", "room_updated", nil)
	})

	t.Run("Unregistering twice is harmless", func(t *testing.T) {
		// Given: a connection already torn down
		hub := NewHub(testLogger())
		hub.register(newClient("conn-a", nil, testLogger()))
		hub.unregister("conn-a")

		// When / Then: a second teardown is a no-op
		hub.unregister("conn-a")
	})

	t.Run("Teardown racing addressed sends never hits a closed channel", func(t *testing.T) {
		// Given: senders hammering a connection while it is torn down. A send
		// landing after the close would panic and fail the run.
		hub := NewHub(testLogger())

		for i := 0; i < 500; i++ {
			client := newClient("conn-a", nil, testLogger())
			hub.register(client)
			hub.Join("AB12CD", "conn-a")

			var wg sync.WaitGroup
			wg.Add(3)
			go func() {
				defer wg.Done()
				for j := 0; j < 20; j++ {
					hub.SendTo("conn-a", "round_info", nil)
				}
			}()
			go func() {
				defer wg.Done()
				for j := 0; j < 20; j++ {
					hub.Broadcast("AB12CD", "room_updated", nil)
				}
			}()
			go func() {
				defer wg.Done()
				hub.unregister("conn-a")
			}()
			wg.Wait()
		}

		assert.Empty(t, hub.clients)
	})
}
