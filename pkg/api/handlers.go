package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/yourusername/gomoku/pkg/engine"
	"github.com/yourusername/gomoku/pkg/token"
)

// Handlers holds the HTTP handlers and the session registry.
type Handlers struct {
	store   *SessionStore
	version string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *SessionStore, version string) *Handlers {
	return &Handlers{
		store:   store,
		version: version,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// stateResponse snapshots the observable state of a game. Callers must
// hold the session lock.
func stateResponse(id string, g *engine.Game) StateResponse {
	past := g.PastMoves()
	moves := make([]MovePayload, len(past))
	for i, m := range past {
		moves[i] = MovePayload{X: m.Pos.X, Y: m.Pos.Y, Stone: m.Stone.String()}
	}

	resp := StateResponse{
		SessionID: id,
		Moves:     moves,
		Index:     g.MoveIndex(),
		Total:     g.TotalMoves(),
		Turn:      g.InferTurn().String(),
	}
	if win, ok := g.FirstWin(); ok {
		resp.Win = &WinPayload{
			Index: win.Index,
			Row: RowPayload{
				Start: PointPayload{X: win.Row.Start.X, Y: win.Row.Start.Y},
				End:   PointPayload{X: win.Row.End.X, Y: win.Row.End.Y},
			},
		}
	}
	return resp
}

// parseStone maps a request stone name to an engine stone. Empty means
// "let the engine infer the turn".
func parseStone(s string) (engine.Stone, bool) {
	switch s {
	case "":
		return engine.None, true
	case "black":
		return engine.Black, true
	case "white":
		return engine.White, true
	}
	return engine.None, false
}

// session resolves the {id} path parameter, writing a 404 on miss.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session", "SESSION_NOT_FOUND")
		return nil, false
	}
	return s, true
}

// writeCommand reports a command outcome together with the resulting
// state. Commands that had no effect answer 409 so clients can tell
// the two apart without diffing states.
func writeCommand(w http.ResponseWriter, applied bool, state StateResponse) {
	status := http.StatusOK
	if !applied {
		status = http.StatusConflict
	}
	writeJSON(w, status, CommandResponse{Applied: applied, State: state})
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.store.Stats()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  h.version,
		Sessions: &stats,
	})
}

// NewGame handles POST /api/game
func (h *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	game := engine.NewGame()
	if req.Token != "" {
		imported, err := token.Decode(req.Token)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error(), "INVALID_TOKEN")
			return
		}
		game = imported
	}

	sess, err := h.store.Create(game)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", "SESSION_LIMIT")
		return
	}

	var state StateResponse
	sess.Apply(func(g *engine.Game) {
		state = stateResponse(sess.ID, g)
	})
	writeJSON(w, http.StatusCreated, state)
}

// State handles GET /api/game/{id}
func (h *Handlers) State(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var state StateResponse
	sess.Apply(func(g *engine.Game) {
		state = stateResponse(sess.ID, g)
	})
	writeJSON(w, http.StatusOK, state)
}

// Delete handles DELETE /api/game/{id}
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "unknown session", "SESSION_NOT_FOUND")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Move handles POST /api/game/{id}/move
func (h *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if req.X >= engine.BoardSize || req.Y >= engine.BoardSize {
		writeError(w, http.StatusBadRequest, "point out of board", "POINT_OUT_OF_BOARD")
		return
	}
	stone, ok := parseStone(req.Stone)
	if !ok {
		writeError(w, http.StatusBadRequest, "stone must be black or white", "INVALID_STONE")
		return
	}

	var applied bool
	var state StateResponse
	sess.Apply(func(g *engine.Game) {
		if stone == engine.None {
			stone = g.InferTurn()
		}
		applied = g.MakeMove(engine.Point{X: req.X, Y: req.Y}, stone)
		state = stateResponse(sess.ID, g)
	})
	writeCommand(w, applied, state)
}

// Undo handles POST /api/game/{id}/undo
func (h *Handlers) Undo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var applied bool
	var state StateResponse
	sess.Apply(func(g *engine.Game) {
		applied = g.Undo()
		state = stateResponse(sess.ID, g)
	})
	writeCommand(w, applied, state)
}

// Redo handles POST /api/game/{id}/redo
func (h *Handlers) Redo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var applied bool
	var state StateResponse
	sess.Apply(func(g *engine.Game) {
		applied = g.Redo()
		state = stateResponse(sess.ID, g)
	})
	writeCommand(w, applied, state)
}

// Jump handles POST /api/game/{id}/jump
func (h *Handlers) Jump(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req JumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	// Range is validated here at the boundary; inside the engine a bad
	// index is a caller bug and panics.
	var applied, outOfRange bool
	var state StateResponse
	sess.Apply(func(g *engine.Game) {
		if req.Index < 0 || req.Index > g.TotalMoves() {
			outOfRange = true
			return
		}
		applied = g.Jump(req.Index)
		state = stateResponse(sess.ID, g)
	})
	if outOfRange {
		writeError(w, http.StatusBadRequest, "move index out of range", "INDEX_OUT_OF_RANGE")
		return
	}
	writeCommand(w, applied, state)
}

// Export handles GET /api/game/{id}/export
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var uri string
	sess.Apply(func(g *engine.Game) {
		uri = token.Encode(g)
	})
	writeJSON(w, http.StatusOK, ExportResponse{Token: uri})
}

// Import handles POST /api/game/{id}/import
func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	imported, err := token.Decode(req.Token)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "INVALID_TOKEN")
		return
	}

	var state StateResponse
	sess.Apply(func(g *engine.Game) {
		*g = *imported
		state = stateResponse(sess.ID, g)
	})
	writeCommand(w, true, state)
}
