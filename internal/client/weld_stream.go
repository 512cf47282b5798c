package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

// StreamURL turns the API base URL into the websocket change feed URL.
func StreamURL(baseURL, objectName string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported api url scheme %q", u.Scheme)
	}
	u.Path += "/welds/stream"
	if objectName != "" {
		u.RawQuery = url.Values{"objectName": {objectName}}.Encode()
	}
	return u.String(), nil
}

// Watch streams weld change events to fn until ctx ends or the server
// closes the feed. An empty objectName receives every event.
func Watch(ctx context.Context, baseURL, objectName string, logger *zap.Logger, fn func(models.WeldEvent)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	target, err := StreamURL(baseURL, objectName)
	if err != nil {
		return err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("dial weld stream: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	})
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return nil
			}
			if errors.Is(err, websocket.ErrCloseSent) {
				return nil
			}
			return fmt.Errorf("read weld stream: %w", err)
		}
		var ev models.WeldEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			logger.Warn("weld stream: bad event", zap.Error(err))
			continue
		}
		fn(ev)
	}
}
