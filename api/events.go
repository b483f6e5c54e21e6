package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Domenick1991/eventra/internal/storefront"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	clientSendSize = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// EventHub fans profile events out to the websockets opened by that profile.
type EventHub struct {
	mu      sync.RWMutex
	clients map[string]map[*wsClient]struct{}
	log     logrus.FieldLogger
}

func NewEventHub(log logrus.FieldLogger) *EventHub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &EventHub{
		clients: make(map[string]map[*wsClient]struct{}),
		log:     log,
	}
}

// Notify never blocks; slow clients miss events.
func (h *EventHub) Notify(profileID string, event storefront.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).Warn("failed to encode event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[profileID] {
		select {
		case client.send <- data:
		default:
			h.log.WithField("profile_id", profileID).Debug("dropping event for slow client")
		}
	}
}

func (h *EventHub) Register(router *gin.RouterGroup) {
	router.GET("", h.serve)
}

func (h *EventHub) serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	profileID := appFrom(c).ProfileID
	client := &wsClient{conn: conn, send: make(chan []byte, clientSendSize)}
	h.add(profileID, client)
	defer h.remove(profileID, client)

	go client.writeLoop()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *EventHub) add(profileID string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[profileID] == nil {
		h.clients[profileID] = make(map[*wsClient]struct{})
	}
	h.clients[profileID][client] = struct{}{}
}

func (h *EventHub) remove(profileID string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[profileID][client]; !ok {
		return
	}
	delete(h.clients[profileID], client)
	if len(h.clients[profileID]) == 0 {
		delete(h.clients, profileID)
	}
	close(client.send)
}

func (c *wsClient) writeLoop() {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

var _ storefront.Notifier = (*EventHub)(nil)
