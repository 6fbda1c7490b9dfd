package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lab1702/wingman/wingman"
)

type wireMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// startServer runs s behind an httptest server until the test ends.
func startServer(t *testing.T, s *Server) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("Run did not return")
		}
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil skips messages until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) wireMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg wireMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == msgType {
			return msg
		}
	}
}

func TestWebSocketTelemetryAndCommands(t *testing.T) {
	s := newTestServer(t, 3, 2)
	ts := startServer(t, s)
	conn := dial(t, ts)

	update := readUntil(t, conn, MsgTypeUpdate)
	var frame GameFrame
	require.NoError(t, json.Unmarshal(update.Data, &frame))
	assert.Positive(t, frame.Frame)
	assert.Len(t, frame.Ships, 2+3+2)

	target := s.pilotsWithRole(RoleHostile)[0].ship.ID
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": MsgTypeCommand,
		"data": CommandRequest{State: "attack", Target: target.String()},
	}))

	ackMsg := readUntil(t, conn, MsgTypeAck)
	var ack CommandAck
	require.NoError(t, json.Unmarshal(ackMsg.Data, &ack))
	assert.Equal(t, wingman.StateAttack, ack.State)
	assert.Len(t, ack.Agents, 3)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": MsgTypeCommand,
		"data": CommandRequest{State: "loiter"},
	}))
	errMsg := readUntil(t, conn, MsgTypeError)
	assert.Contains(t, string(errMsg.Data), "unknown wingman state")

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "chat"}))
	errMsg = readUntil(t, conn, MsgTypeError)
	assert.Contains(t, string(errMsg.Data), "unknown message type")
}

func TestWebSocketClientLifecycle(t *testing.T) {
	s := newTestServer(t, 0, 0)
	ts := startServer(t, s)
	conn := dial(t, ts)

	assert.Eventually(t, func() bool { return s.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	conn.Close()
	assert.Eventually(t, func() bool { return s.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestShutdownStopsRun(t *testing.T) {
	s := newTestServer(t, 1, 1)
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(context.Background()) }()

	s.Shutdown()
	s.Shutdown()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestHTTPRoutes(t *testing.T) {
	s := newTestServer(t, 2, 1)
	ts := startServer(t, s)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/agents")
	require.NoError(t, err)
	var agents []ShipView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&agents))
	resp.Body.Close()
	assert.Len(t, agents, 3)

	post := func(body string) int {
		resp, err := http.Post(ts.URL+"/api/command", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusOK, post(`{"state":"follow"}`))
	assert.Equal(t, http.StatusBadRequest, post(`{"state":`))
	assert.Equal(t, http.StatusBadRequest, post(`{"state":"loiter"}`))
	assert.Equal(t, http.StatusNotFound, post(`{"agent":"`+s.leader.ship.ID.String()+`","state":"follow"}`))

	resp, err = http.Get(ts.URL + "/api/command")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestIsValidOrigin(t *testing.T) {
	tests := []struct {
		origin string
		host   string
		want   bool
	}{
		{"", "example.com", true},
		{"http://example.com", "example.com", true},
		{"http://localhost:3000", "example.com", true},
		{"http://127.0.0.1", "example.com", true},
		{"http://evil.com", "example.com", false},
		{"://bad", "example.com", false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		r.Host = tt.host
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		assert.Equal(t, tt.want, isValidOrigin(r), tt.origin)
	}
}
