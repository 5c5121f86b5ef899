package spectator

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlewars/engine/internal/game/events"
	"github.com/castlewars/engine/internal/testutil"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()
	srv := NewServer("127.0.0.1:0", testutil.NopLogger())
	require.NoError(t, srv.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return srv
}

func dial(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	url := "ws://" + srv.Addr() + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServerBroadcastsToClients(t *testing.T) {
	srv := startTestServer(t)
	conn := dial(t, srv)

	// Registration happens in the upgrade handler before the first frame
	// can arrive, so broadcasting right after a successful dial is safe.
	require.Eventually(t, func() bool { return srv.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	srv.Broadcast(events.NewTurnStartedEvent("g1", 4))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type string `json:"type"`
		Turn int    `json:"turn"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, events.TypeTurnStarted, got.Type)
	assert.Equal(t, 4, got.Turn)
}

func TestServerAttachRelaysBusEvents(t *testing.T) {
	srv := startTestServer(t)
	bus := events.NewBus(testutil.NopLogger())
	srv.Attach(bus)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return srv.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	bus.Publish(events.NewGameEndedEvent("g1", "RED", "forfeit", 9))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type   string `json:"type"`
		Winner string `json:"winner"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, events.TypeGameEnded, got.Type)
	assert.Equal(t, "RED", got.Winner)
}

func TestServerShutdownDropsClients(t *testing.T) {
	srv := startTestServer(t)
	dial(t, srv)
	require.Eventually(t, func() bool { return srv.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.Zero(t, srv.ClientCount())
}

func TestServerRejectsBadAddr(t *testing.T) {
	srv := NewServer("256.0.0.1:99999", testutil.NopLogger())
	assert.Error(t, srv.Start())
}
