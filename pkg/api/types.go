// Package api provides the HTTP/JSON boundary between the game engine
// and a presentation layer. Each session owns one independent game;
// there is no matchmaking and no shared state between sessions.
package api

// ============================================================================
// Request Types
// ============================================================================

// NewGameRequest is the request body for creating a session. An empty
// body creates an empty game; a token imports an existing record.
type NewGameRequest struct {
	Token string `json:"token,omitempty"` // Optional gomoku:// game token
}

// MoveRequest is the request body for placing a stone.
type MoveRequest struct {
	X     uint32 `json:"x"`               // Column, 0-based
	Y     uint32 `json:"y"`               // Row, 0-based
	Stone string `json:"stone,omitempty"` // "black" or "white"; empty = inferred turn
}

// JumpRequest is the request body for time travel.
type JumpRequest struct {
	Index int `json:"index"` // Target move index, 0..total
}

// ImportRequest is the request body for replacing a session's game.
type ImportRequest struct {
	Token string `json:"token"` // gomoku:// game token
}

// ============================================================================
// Response Types
// ============================================================================

// PointPayload is a board coordinate.
type PointPayload struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
}

// MovePayload is one recorded move.
type MovePayload struct {
	X     uint32 `json:"x"`
	Y     uint32 `json:"y"`
	Stone string `json:"stone"`
}

// RowPayload is the inclusive endpoints of a winning row.
type RowPayload struct {
	Start PointPayload `json:"start"`
	End   PointPayload `json:"end"`
}

// WinPayload describes the first visible win.
type WinPayload struct {
	Index int        `json:"index"` // Move count at which the win appeared
	Row   RowPayload `json:"row"`
}

// StateResponse is the full observable game state of a session.
type StateResponse struct {
	SessionID string        `json:"session_id"`
	Moves     []MovePayload `json:"moves"` // Applied moves, in order
	Index     int           `json:"index"` // Cursor
	Total     int           `json:"total"` // All moves, past and future
	Turn      string        `json:"turn"`  // Inferred next stone
	Win       *WinPayload   `json:"win,omitempty"`
}

// CommandResponse is returned by state-changing endpoints. Applied is
// false when the command had no effect (occupied cell, undo at start,
// redo at end, jump to the current index).
type CommandResponse struct {
	Applied bool          `json:"applied"`
	State   StateResponse `json:"state"`
}

// ExportResponse carries a shareable game token.
type ExportResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is returned when an error occurs.
type ErrorResponse struct {
	Error string `json:"error"`          // Error message
	Code  string `json:"code,omitempty"` // Error code
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status   string      `json:"status"`             // "ok" or "error"
	Version  string      `json:"version"`            // Server version
	Sessions *StoreStats `json:"sessions,omitempty"` // Session registry statistics
}
