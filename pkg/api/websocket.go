package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/yourusername/gomoku/pkg/engine"
	"github.com/yourusername/gomoku/pkg/token"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // Message type: "move", "undo", "redo", "jump", "state", "export", "import", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a generic WebSocket response.
type WSResponse struct {
	Type    string      `json:"type"`              // Response type: "result", "error", "pong"
	ID      string      `json:"id,omitempty"`      // Request ID
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
}

// WSClient represents a connected WebSocket client bound to one
// session.
type WSClient struct {
	conn     *websocket.Conn
	session  *Session
	sendChan chan WSResponse
}

// WebSocket handles WebSocket connections for driving one game session
// interactively.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session", "SESSION_NOT_FOUND")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	client := &WSClient{conn: conn, session: sess, sendChan: make(chan WSResponse, 256)}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "move":
		c.handleMove(msg)
	case "undo":
		c.handleStep(msg, (*engine.Game).Undo)
	case "redo":
		c.handleStep(msg, (*engine.Game).Redo)
	case "jump":
		c.handleJump(msg)
	case "state":
		c.handleState(msg)
	case "export":
		c.handleExport(msg)
	case "import":
		c.handleImport(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"}
	}
}

func (c *WSClient) sendCommand(id string, applied bool, state StateResponse) {
	c.sendChan <- WSResponse{Type: "result", ID: id, Payload: CommandResponse{Applied: applied, State: state}}
}

func (c *WSClient) handleMove(msg WSMessage) {
	var req MoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	if req.X >= engine.BoardSize || req.Y >= engine.BoardSize {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "point out of board"}
		return
	}
	stone, ok := parseStone(req.Stone)
	if !ok {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "stone must be black or white"}
		return
	}

	var applied bool
	var state StateResponse
	c.session.Apply(func(g *engine.Game) {
		if stone == engine.None {
			stone = g.InferTurn()
		}
		applied = g.MakeMove(engine.Point{X: req.X, Y: req.Y}, stone)
		state = stateResponse(c.session.ID, g)
	})
	c.sendCommand(msg.ID, applied, state)
}

func (c *WSClient) handleStep(msg WSMessage, step func(*engine.Game) bool) {
	var applied bool
	var state StateResponse
	c.session.Apply(func(g *engine.Game) {
		applied = step(g)
		state = stateResponse(c.session.ID, g)
	})
	c.sendCommand(msg.ID, applied, state)
}

func (c *WSClient) handleJump(msg WSMessage) {
	var req JumpRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}

	var applied, outOfRange bool
	var state StateResponse
	c.session.Apply(func(g *engine.Game) {
		if req.Index < 0 || req.Index > g.TotalMoves() {
			outOfRange = true
			return
		}
		applied = g.Jump(req.Index)
		state = stateResponse(c.session.ID, g)
	})
	if outOfRange {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "move index out of range"}
		return
	}
	c.sendCommand(msg.ID, applied, state)
}

func (c *WSClient) handleState(msg WSMessage) {
	var state StateResponse
	c.session.Apply(func(g *engine.Game) {
		state = stateResponse(c.session.ID, g)
	})
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: state}
}

func (c *WSClient) handleExport(msg WSMessage) {
	var uri string
	c.session.Apply(func(g *engine.Game) {
		uri = token.Encode(g)
	})
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: ExportResponse{Token: uri}}
}

func (c *WSClient) handleImport(msg WSMessage) {
	var req ImportRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	imported, err := token.Decode(req.Token)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
		return
	}

	var state StateResponse
	c.session.Apply(func(g *engine.Game) {
		*g = *imported
		state = stateResponse(c.session.ID, g)
	})
	c.sendCommand(msg.ID, true, state)
}
