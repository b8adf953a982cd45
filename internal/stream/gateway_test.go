package stream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradingai-demo/internal/config"
	"tradingai-demo/internal/market"
	"tradingai-demo/internal/scheduler"
	"tradingai-demo/internal/session"
)

func serve(t *testing.T, origins []string) (*Gateway, *session.Session, *scheduler.Manual, string) {
	t.Helper()
	sched := scheduler.NewManual()
	s, err := session.New("ws", config.Default().Simulation, sched, market.ConstantSource(0.75))
	require.NoError(t, err)
	s.Mount()

	g := NewGateway(origins)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.Serve(w, r, s)
	}))
	t.Cleanup(srv.Close)
	return g, s, sched, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func setup(t *testing.T) (*Gateway, *session.Session, *scheduler.Manual, *websocket.Conn) {
	t.Helper()
	g, s, sched, url := serve(t, []string{"*"})
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return g, s, sched, conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) session.Snapshot {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "snapshot", msg.Type)
	require.NotNil(t, msg.Data)
	return *msg.Data
}

func TestGateway(t *testing.T) {
	t.Run("initial snapshot then updates", func(t *testing.T) {
		g, s, sched, conn := setup(t)
		defer s.Unmount()

		first := readSnapshot(t, conn)
		assert.Equal(t, "ws", first.ID)
		assert.Equal(t, 0, first.Ticks)
		assert.Equal(t, 1, g.Count())

		sched.Advance(1200 * time.Millisecond)
		next := readSnapshot(t, conn)
		assert.Equal(t, 1, next.Ticks)
		assert.InDelta(t, 476.25, next.Ticker[0].Price, 1e-9)
	})

	t.Run("snapshot on request", func(t *testing.T) {
		_, s, _, conn := setup(t)
		defer s.Unmount()
		readSnapshot(t, conn)

		require.NoError(t, conn.WriteJSON(Request{Action: "snapshot"}))
		snap := readSnapshot(t, conn)
		assert.True(t, snap.Mounted)
	})

	t.Run("unmount closes the stream", func(t *testing.T) {
		g, s, _, conn := setup(t)
		readSnapshot(t, conn)
		s.Unmount()

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, _, err := conn.ReadMessage()
		require.Error(t, err)
		assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
		assert.Eventually(t, func() bool { return g.Count() == 0 }, time.Second, 10*time.Millisecond)
	})

	t.Run("origin outside the allowed list is rejected", func(t *testing.T) {
		g, s, _, url := serve(t, []string{"http://localhost:5173"})
		defer s.Unmount()

		header := http.Header{"Origin": []string{"http://evil.test"}}
		_, resp, err := websocket.DefaultDialer.Dial(url, header)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, 0, g.Count())

		header = http.Header{"Origin": []string{"http://localhost:5173"}}
		conn, _, err := websocket.DefaultDialer.Dial(url, header)
		require.NoError(t, err)
		defer conn.Close()
		assert.Equal(t, "ws", readSnapshot(t, conn).ID)
	})
}
