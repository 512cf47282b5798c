package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startHub(t *testing.T) (*WeldHub, string, context.CancelFunc) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewWeldHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	r := gin.New()
	r.GET("/stream", WeldStreamHandler(hub))
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		<-stopped
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream", cancel
}

func dial(t *testing.T, hub *WeldHub, url string) *websocket.Conn {
	t.Helper()
	before := hub.Subscribers()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return hub.Subscribers() > before }, 3*time.Second, 10*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) models.WeldEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev models.WeldEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func weldFor(object string) *models.Weld {
	return &models.Weld{ID: "w-" + object, ObjectName: &object, WeldNumber: "ШС-1"}
}

func TestWeldHub_DeliversEvents(t *testing.T) {
	hub, url, _ := startHub(t)
	conn := dial(t, hub, url)

	hub.Publish(models.WeldEvent{Type: models.WeldCreated, ID: "w-A", Weld: weldFor("A")})
	got := readEvent(t, conn)
	assert.Equal(t, models.WeldCreated, got.Type)
	assert.Equal(t, "w-A", got.ID)
	require.NotNil(t, got.Weld)
	assert.Equal(t, "ШС-1", got.Weld.WeldNumber)
}

func TestWeldHub_ObjectNameScope(t *testing.T) {
	hub, url, _ := startHub(t)
	scoped := dial(t, hub, url+"?objectName=B")
	all := dial(t, hub, url)

	hub.Publish(models.WeldEvent{Type: models.WeldUpdated, ID: "w-A", Weld: weldFor("A")})
	hub.Publish(models.WeldEvent{Type: models.WeldDeleted, ID: "w-B", Weld: weldFor("B")})

	got := readEvent(t, scoped)
	assert.Equal(t, "w-B", got.ID)
	assert.Equal(t, models.WeldDeleted, got.Type)

	assert.Equal(t, "w-A", readEvent(t, all).ID)
	assert.Equal(t, "w-B", readEvent(t, all).ID)
}

func TestWeldHub_StopClosesSubscribers(t *testing.T) {
	hub, url, cancel := startHub(t)
	conn := dial(t, hub, url)

	cancel()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNoStatusReceived, websocket.CloseAbnormalClosure), err.Error())

	// Publishing after shutdown must not block.
	hub.Publish(models.WeldEvent{Type: models.WeldCreated, ID: "late"})
	assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestWeldHub_MovedWeldReachesBothObjects(t *testing.T) {
	hub, url, _ := startHub(t)
	oldScope := dial(t, hub, url+"?objectName=A")
	newScope := dial(t, hub, url+"?objectName=B")

	from := "A"
	hub.Publish(models.WeldEvent{Type: models.WeldUpdated, ID: "w-B", Weld: weldFor("B"), PreviousObjectName: &from})

	left := readEvent(t, oldScope)
	assert.Equal(t, "w-B", left.ID)
	require.NotNil(t, left.PreviousObjectName)
	assert.Equal(t, "A", *left.PreviousObjectName)
	assert.Equal(t, "B", *left.Weld.ObjectName)
	assert.Equal(t, "w-B", readEvent(t, newScope).ID)
}
