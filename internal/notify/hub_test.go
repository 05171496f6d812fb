package notify

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBroadcastDelivers(t *testing.T) {
	hub := newTestHub()
	c := &client{send: make(chan []byte, 4)}
	hub.attach(c)

	hub.Broadcast(EventToast, gin.H{"message": "hi", "severity": "info"})

	var ev Event
	require.NoError(t, json.Unmarshal(<-c.send, &ev))
	assert.Equal(t, EventToast, ev.Type)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	hub := newTestHub()
	slow := &client{send: make(chan []byte, 1)}
	hub.attach(slow)

	hub.Broadcast(EventTone, gin.H{"freqHz": 800})
	require.Equal(t, 1, hub.ClientCount())

	// Buffer is full now, so the next broadcast detaches the client.
	hub.Broadcast(EventTone, gin.H{"freqHz": 1000})
	assert.Equal(t, 0, hub.ClientCount())

	// The send channel is closed exactly once; draining it terminates.
	for range slow.send {
	}
}

func TestBroadcastConcurrentWithDetach(t *testing.T) {
	hub := newTestHub()
	for i := 0; i < 4; i++ {
		hub.attach(&client{send: make(chan []byte, 1)})
	}

	// Scheduler and reminder goroutines broadcast independently; all of them
	// racing to drop the same full client must not panic on a closed channel.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				hub.Broadcast(EventReminder, gin.H{"n": j})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.ClientCount())
}

func TestDetachTwice(t *testing.T) {
	hub := newTestHub()
	c := &client{send: make(chan []byte, 1)}
	hub.attach(c)

	hub.detach(c)
	hub.detach(c)
	assert.Equal(t, 0, hub.ClientCount())
}
