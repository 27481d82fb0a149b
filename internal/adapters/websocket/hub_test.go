package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubscribeIsVisibleToNextBroadcast(t *testing.T) {
	hub := NewHub()
	client := &Client{Hub: hub, Send: make(chan []byte, 1), SessionID: "s1"}

	hub.subscribe(client)
	require.Equal(t, 1, hub.Clients("s1"))

	hub.BroadcastToSession("s1", map[string]string{"type": "session_state"})
	select {
	case raw := <-client.Send:
		var msg Envelope
		require.NoError(t, json.Unmarshal(raw, &msg))
		require.Equal(t, "session_state", msg.Type)
	default:
		t.Fatal("broadcast não entregue ao cliente recém-inscrito")
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	client := &Client{Hub: hub, Send: make(chan []byte, 1), SessionID: "s1"}
	hub.subscribe(client)

	hub.BroadcastToSession("s1", "primeiro")
	hub.BroadcastToSession("s1", "segundo")
	require.Len(t, client.Send, 1)
}
