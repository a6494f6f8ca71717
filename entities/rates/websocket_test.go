package rates

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transdom/schemas"
)

func dialHub(t *testing.T, hub *Hub, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub([]string{"*"})

	conn, _, err := dialHub(t, hub, "https://admin.transdom.test")
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	view := ToView(ukIreland())
	hub.Broadcast(schemas.RateChange{Action: "upsert", Zone: view.Zone, Card: view})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	got := schemas.RateChange{}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "upsert", got.Action)
	assert.Equal(t, "UK_IRELAND", got.Zone)
	assert.Len(t, got.Card.Rates, 3)
}

func TestHubUnregistersOnClose(t *testing.T) {
	hub := NewHub([]string{"*"})

	conn, _, err := dialHub(t, hub, "")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubRejectsUnknownOrigin(t *testing.T) {
	hub := NewHub([]string{"https://admin.transdom.test"})

	_, resp, err := dialHub(t, hub, "https://evil.test")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, hub.Clients())
}
