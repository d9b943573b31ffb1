package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vortexhw/vortexpanel/internal/controller"
)

func testSnap() controller.Snapshot {
	return controller.Snapshot{
		Mode: "clock",
		LCD:  [2]string{"Clock Mode      ", "Running         "},
	}
}

func newTestServer() *Server {
	return NewServer(":0", testSnap, zerolog.Nop())
}

func TestStateEndpoint(t *testing.T) {
	ts := httptest.NewServer(newTestServer().Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var snap controller.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "clock", snap.Mode)
	assert.Equal(t, "Clock Mode      ", snap.LCD[0])
}

func TestHealthEndpoint(t *testing.T) {
	ts := httptest.NewServer(newTestServer().Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "clock", body["mode"])
	assert.Contains(t, body, "uptime_s")
}

func TestFramesWSInitialPush(t *testing.T) {
	ts := httptest.NewServer(newTestServer().Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/frames"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var snap controller.Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "clock", snap.Mode)
}

func TestFramesWSConnectDuringBroadcast(t *testing.T) {
	srv := newTestServer()
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	// Hammer the broadcast path while clients connect and take their
	// initial push; a connection must never see interleaved writers.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		snap := testSnap()
		for {
			select {
			case <-stop:
				return
			default:
				snap.Volume++
				srv.broadcast(snap)
			}
		}
	}()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/frames"
	for i := 0; i < 20; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		var snap controller.Snapshot
		require.NoError(t, conn.ReadJSON(&snap))
		assert.Equal(t, "clock", snap.Mode)
		conn.Close()
	}
	close(stop)
	wg.Wait()
}

func TestUnknownRoute(t *testing.T) {
	ts := httptest.NewServer(newTestServer().Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
