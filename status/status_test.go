package status

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Frame int `json:"frame"`
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestHubReplaysLast(t *testing.T) {
	h := NewHub()
	ts := httptest.NewServer(h)
	defer ts.Close()

	require.NoError(t, h.Publish(message{Frame: 7}))

	conn := dial(t, ts)
	var m message
	require.NoError(t, conn.ReadJSON(&m))
	assert.Equal(t, 7, m.Frame)
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	ts := httptest.NewServer(h)
	defer ts.Close()

	a := dial(t, ts)
	b := dial(t, ts)
	assert.Eventually(t, func() bool { return h.Clients() == 2 }, 5*time.Second, 10*time.Millisecond)

	for i := 1; i <= 3; i++ {
		require.NoError(t, h.Publish(message{Frame: i}))
	}
	for _, conn := range []*websocket.Conn{a, b} {
		for i := 1; i <= 3; i++ {
			var m message
			require.NoError(t, conn.ReadJSON(&m))
			assert.Equal(t, i, m.Frame)
		}
	}

	a.Close()
	assert.Eventually(t, func() bool { return h.Clients() == 1 }, 5*time.Second, 10*time.Millisecond)

	h.Close()
	assert.Equal(t, 0, h.Clients())
}

func TestHubPublishError(t *testing.T) {
	h := NewHub()
	assert.Error(t, h.Publish(make(chan int)))
}
