package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dialTestHub(t *testing.T) (*Hub, *websocket.Conn) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	hub := NewHub(zap.NewNop().Sugar())
	go hub.Run()

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		ServeWS(hub, c)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Give the hub's run loop a beat to process the registration.
	time.Sleep(50 * time.Millisecond)

	return hub, conn
}

func TestHubBroadcastReachesSubscriber(t *testing.T) {
	hub, conn := dialTestHub(t)

	hub.Broadcast("request.created", map[string]string{"emergency_type": "Bleeding"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(frame, &msg))

	assert.Equal(t, "request.created", msg.Type)
	assert.NotZero(t, msg.Timestamp)

	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Bleeding", data["emergency_type"])
}

func TestHubBroadcastInOrder(t *testing.T) {
	hub, conn := dialTestHub(t)

	hub.Broadcast("request.created", nil)
	hub.Broadcast("request.accepted", nil)
	hub.Broadcast("request.completed", nil)

	var got []string
	for i := 0; i < 3; i++ {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, frame, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg Message
		require.NoError(t, json.Unmarshal(frame, &msg))
		got = append(got, msg.Type)
	}

	assert.Equal(t, []string{"request.created", "request.accepted", "request.completed"}, got)
}
