package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smartbook/internal/config"
	"smartbook/internal/logger"
	"smartbook/internal/middleware"
	"smartbook/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Hub, *middleware.Authenticator, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := middleware.NewAuthenticator(config.AuthConfig{JWTSecret: "ws-secret", TokenTTL: time.Hour}, false)
	hub := NewHub(nil, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) { ServeWs(hub, auth, c) })
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return hub, auth, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func dial(t *testing.T, url string, auth *middleware.Authenticator, tenantID uuid.UUID) *websocket.Conn {
	t.Helper()
	token, _, err := auth.IssueToken(uuid.New(), tenantID, model.UserRoleStaff)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+token, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHubPublishIsTenantScoped(t *testing.T) {
	hub, auth, url := newTestServer(t)
	tenantA, tenantB := uuid.New(), uuid.New()

	connA := dial(t, url, auth, tenantA)
	connB := dial(t, url, auth, tenantB)
	require.Eventually(t, func() bool {
		return hub.ClientCount(tenantA) == 1 && hub.ClientCount(tenantB) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Publish(tenantA, "tax.calculated", map[string]string{"booking_id": "b1"})

	_ = connA.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := connA.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "tax.calculated", event.Type)
	assert.Equal(t, "b1", event.Payload["booking_id"])

	_ = connB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = connB.ReadMessage()
	assert.Error(t, err, "other tenants receive nothing")
}

func TestServeWsRejectsMissingToken(t *testing.T) {
	_, _, url := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(url+"?token=forged", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBufferSize*2; i++ {
			hub.Publish(uuid.New(), "tax_rule.changed", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}

func TestServeWsAfterHubStopped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	auth := middleware.NewAuthenticator(config.AuthConfig{JWTSecret: "ws-secret", TokenTTL: time.Hour}, false)
	hub := NewHub(nil, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	served := make(chan struct{}, 2)
	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		ServeWs(hub, auth, c)
		served <- struct{}{}
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	tenantID := uuid.New()
	before := dial(t, url, auth, tenantID)
	require.Eventually(t, func() bool { return hub.ClientCount(tenantID) == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	// connected clients are closed by the server
	assertClosedByServer(t, before)

	// new connections are closed instead of waiting on the stopped hub
	after := dial(t, url, auth, tenantID)
	assertClosedByServer(t, after)

	for i := 0; i < 2; i++ {
		select {
		case <-served:
		case <-time.After(2 * time.Second):
			t.Fatal("ServeWs blocked after the hub stopped")
		}
	}
	assert.Zero(t, hub.ClientCount(tenantID))
}

func assertClosedByServer(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)

	var netErr net.Error
	assert.False(t, errors.As(err, &netErr) && netErr.Timeout(), "expected a close, got %v", err)
}
