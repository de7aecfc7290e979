package api

import (
	"context"
	"encoding/json"
	"geoport-delivery/internal/api/dto"
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/services"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgShopsSpawned    = "shops_spawned"
	MsgCandidatesReady = "candidates_ready"
	MsgPosition        = "position"
	MsgTurnResolved    = "turn_resolved"
	MsgTierChanged     = "tier_changed"
	MsgCue             = "cue"

	writeWait = 10 * time.Second
)

// Message is the JSON envelope of every realtime notification.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
	Sender  string `json:"sender"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans session notifications out to every connected websocket client.
// It implements ports.TurnObserver; notifications never block the session
// and are dropped when the hub is saturated.
type Hub struct {
	sender string

	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
}

func NewHub(sender string) *Hub {
	return &Hub{
		sender:     sender,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns when ctx is done, closing all
// client connections.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			log.Printf("ws: client registered clients=%d", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Slow client.
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// Publish encodes one envelope and queues it without blocking.
func (h *Hub) Publish(msgType string, payload any) {
	b, err := json.Marshal(Message{Type: msgType, Payload: payload, Sender: h.sender})
	if err != nil {
		log.Printf("ws: encode type=%s err=%v", msgType, err)
		return
	}

	select {
	case h.broadcast <- b:
	default:
		log.Printf("ws: broadcast queue full, dropped type=%s", msgType)
	}
}

func (h *Hub) ShopsSpawned(shops []domain.Coordinate, tier domain.Tier) {
	h.Publish(MsgShopsSpawned, map[string]any{
		"shops": shops,
		"tier":  dto.NewTierResponse(tier),
	})
}

func (h *Hub) CandidatesReady(turnID string, candidates []domain.RouteCandidate) {
	res := make([]dto.CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		res = append(res, dto.NewCandidateResponse(c))
	}
	h.Publish(MsgCandidatesReady, map[string]any{
		"turn_id":    turnID,
		"candidates": res,
	})
}

func (h *Hub) PositionUpdated(turnID string, frame domain.DeliveryFrame) {
	h.Publish(MsgPosition, map[string]any{
		"turn_id":  turnID,
		"progress": frame.Progress,
		"position": frame.Position,
		"phase":    frame.Phase,
	})
}

func (h *Hub) TurnResolved(turnID string, outcome domain.Outcome) {
	h.Publish(MsgTurnResolved, map[string]any{
		"turn_id": turnID,
		"outcome": dto.NewOutcomeResponse(&outcome),
	})
}

func (h *Hub) TierChanged(tier domain.Tier) {
	h.Publish(MsgTierChanged, dto.NewTierResponse(tier))
}

func (h *Hub) Cue(cue domain.Cue) {
	h.Publish(MsgCue, dto.NewCueResponse(cue, services.CueSequence(cue)))
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, 256)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump drains inbound frames; clients drive the game over HTTP.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws: read error: %v", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
