package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	sendBufferSize  = 256
	broadcastBuffer = 256
)

type weldMessage struct {
	objectNames []string
	payload     []byte
}

// wants reports whether a subscriber scoped to objectName receives m.
func (m weldMessage) wants(objectName string) bool {
	if objectName == "" {
		return true
	}
	for _, n := range m.objectNames {
		if n == objectName {
			return true
		}
	}
	return false
}

// WeldHub fans weld change events out to websocket subscribers.
type WeldHub struct {
	register   chan *weldClient
	unregister chan *weldClient
	broadcast  chan weldMessage
	done       chan struct{}
	clients    map[*weldClient]struct{}
	count      atomic.Int64
	log        *zap.Logger
}

func NewWeldHub(log *zap.Logger) *WeldHub {
	if log == nil {
		log = zap.NewNop()
	}
	return &WeldHub{
		register:   make(chan *weldClient),
		unregister: make(chan *weldClient),
		broadcast:  make(chan weldMessage, broadcastBuffer),
		done:       make(chan struct{}),
		clients:    make(map[*weldClient]struct{}),
		log:        log,
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every client.
func (h *WeldHub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for client := range h.clients {
			h.drop(client)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			h.log.Debug("ws subscriber joined", zap.String("object_name", client.objectName), zap.Int("clients", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				if !msg.wants(client.objectName) {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					h.log.Warn("ws subscriber too slow, dropping")
					h.drop(client)
				}
			}
		}
	}
}

func (h *WeldHub) drop(client *weldClient) {
	delete(h.clients, client)
	close(client.send)
	h.count.Store(int64(len(h.clients)))
}

// Subscribers reports how many websocket clients are connected.
func (h *WeldHub) Subscribers() int {
	return int(h.count.Load())
}

// Publish queues ev for delivery. Events are dropped when the queue is full
// or the hub has stopped, so writers never block on slow subscribers.
func (h *WeldHub) Publish(ev models.WeldEvent) {
	if h == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("ws: failed to marshal event", zap.Error(err))
		return
	}
	msg := weldMessage{objectNames: ev.ObjectNames(), payload: data}
	select {
	case <-h.done:
	case h.broadcast <- msg:
	default:
		h.log.Warn("ws: broadcast queue full, event dropped", zap.String("type", string(ev.Type)), zap.String("id", ev.ID))
	}
}

type weldClient struct {
	hub        *WeldHub
	conn       *websocket.Conn
	send       chan []byte
	objectName string
}

func newWeldClient(hub *WeldHub, conn *websocket.Conn, objectName string) *weldClient {
	return &weldClient{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
		objectName: objectName,
	}
}

func (c *weldClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *weldClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
