package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("hub never reached %d clients", want)
}

func TestHubBroadcastReading(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{Hub: h, Send: make(chan []byte, 4)}
	h.RegisterClient(client)
	waitForClients(t, h, 1)

	h.BroadcastReading(map[string]interface{}{"sensor_id": 3, "value": 4.5})

	select {
	case raw := <-client.Send:
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, "reading", env.Type)
		payload, ok := env.Payload.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 4.5, payload["value"])
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the client")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	// Zero-buffer channel with no reader looks like a stalled connection.
	slow := &Client{Hub: h, Send: make(chan []byte)}
	h.RegisterClient(slow)
	waitForClients(t, h, 1)

	h.BroadcastAlert(map[string]interface{}{"severity": "critical"})
	waitForClients(t, h, 0)

	_, open := <-slow.Send
	assert.False(t, open, "hub should close the dropped client channel")
}
