package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeSSE(t *testing.T) {
	ch := NewChannel(KindSSE, "", 4)
	ch.Send([]byte(`{"type":"connection_established","data":null}`))
	ch.Send([]byte(`{"type":"unread_count","data":2}`))

	rec := httptest.NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- ServeSSE(ctx, rec, ch, 10*time.Millisecond) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.True(t, strings.Index(body, "connection_established") < strings.Index(body, "unread_count"))
	assert.Contains(t, body, "data: {\"type\":\"unread_count\",\"data\":2}\n\n")
	assert.Contains(t, body, ": heartbeat\n\n")
}

func TestServeSSE_ChannelClosed(t *testing.T) {
	ch := NewChannel(KindSSE, "", 1)
	ch.Close()
	err := ServeSSE(context.Background(), httptest.NewRecorder(), ch, time.Second)
	assert.NoError(t, err)
}

func TestServeWebSocket(t *testing.T) {
	ch := NewChannel(KindWebSocket, "", 4)
	served := make(chan error, 1)
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			served <- err
			return
		}
		defer conn.Close()
		served <- ServeWebSocket(conn, ch, time.Second)
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, ch.Send([]byte(`{"type":"new_message","data":{"id":"n1"}}`)))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"new_message","data":{"id":"n1"}}`, string(msg))

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("websocket pump did not stop after client close")
	}
}
