package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	config := DefaultConfig()
	config.MaxSessions = 8
	srv := NewServer(config, "test")
	ts := httptest.NewServer(srv.setupRoutes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/game", NewGameRequest{})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session: status %d", resp.StatusCode)
	}
	var state StateResponse
	decodeBody(t, resp, &state)
	if state.SessionID == "" {
		t.Fatal("create session: empty session ID")
	}
	return state.SessionID
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var health HealthResponse
	decodeBody(t, resp, &health)
	if health.Status != "ok" {
		t.Errorf("status field = %q, want ok", health.Status)
	}
	if health.Version != "test" {
		t.Errorf("version = %q, want test", health.Version)
	}
	if health.Sessions == nil || health.Sessions.Max != 8 {
		t.Errorf("sessions stats = %+v, want max 8", health.Sessions)
	}
}

func TestGameLifecycle(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)
	base := ts.URL + "/api/game/" + id

	// Place two stones with inferred turns.
	var cmd CommandResponse
	resp := postJSON(t, base+"/move", MoveRequest{X: 7, Y: 7})
	decodeBody(t, resp, &cmd)
	if !cmd.Applied || cmd.State.Turn != "white" {
		t.Fatalf("first move: applied=%v turn=%q", cmd.Applied, cmd.State.Turn)
	}

	resp = postJSON(t, base+"/move", MoveRequest{X: 8, Y: 8})
	decodeBody(t, resp, &cmd)
	if !cmd.Applied || cmd.State.Index != 2 {
		t.Fatalf("second move: applied=%v index=%d", cmd.Applied, cmd.State.Index)
	}

	// Re-placing on an occupied cell is a no-effect command: 409.
	resp = postJSON(t, base+"/move", MoveRequest{X: 7, Y: 7})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("occupied move: status = %d, want 409", resp.StatusCode)
	}
	decodeBody(t, resp, &cmd)
	if cmd.Applied {
		t.Error("occupied move reported as applied")
	}

	// Undo, redo, jump.
	resp = postJSON(t, base+"/undo", nil)
	decodeBody(t, resp, &cmd)
	if !cmd.Applied || cmd.State.Index != 1 || cmd.State.Total != 2 {
		t.Fatalf("undo: %+v", cmd)
	}

	resp = postJSON(t, base+"/redo", nil)
	decodeBody(t, resp, &cmd)
	if !cmd.Applied || cmd.State.Index != 2 {
		t.Fatalf("redo: %+v", cmd)
	}

	resp = postJSON(t, base+"/jump", JumpRequest{Index: 0})
	decodeBody(t, resp, &cmd)
	if !cmd.Applied || cmd.State.Index != 0 || cmd.State.Total != 2 {
		t.Fatalf("jump: %+v", cmd)
	}

	// Undo at the start has no effect.
	resp = postJSON(t, base+"/undo", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("undo at start: status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	// State reflects the cursor, not the ledger.
	resp, err := http.Get(base)
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	var state StateResponse
	decodeBody(t, resp, &state)
	if len(state.Moves) != 0 || state.Total != 2 || state.Turn != "black" {
		t.Errorf("state at index 0: %+v", state)
	}

	// Drop the session.
	req, _ := http.NewRequest(http.MethodDelete, base, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete: status = %d, want 204", resp.StatusCode)
	}

	resp, err = http.Get(base)
	if err != nil {
		t.Fatalf("GET deleted state: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("state after delete: status = %d, want 404", resp.StatusCode)
	}
}

func TestWinReporting(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)
	base := ts.URL + "/api/game/" + id

	// Black builds a vertical five at x=0 while white fills x=5.
	var cmd CommandResponse
	for i := uint32(0); i < 4; i++ {
		resp := postJSON(t, base+"/move", MoveRequest{X: 0, Y: i})
		decodeBody(t, resp, &cmd)
		resp = postJSON(t, base+"/move", MoveRequest{X: 5, Y: i})
		decodeBody(t, resp, &cmd)
	}
	if cmd.State.Win != nil {
		t.Fatal("win reported before the fifth stone")
	}

	resp := postJSON(t, base+"/move", MoveRequest{X: 0, Y: 4})
	decodeBody(t, resp, &cmd)
	win := cmd.State.Win
	if win == nil {
		t.Fatal("no win reported for the five-long row")
	}
	if win.Index != 9 {
		t.Errorf("win index = %d, want 9", win.Index)
	}
	if win.Row.Start != (PointPayload{X: 0, Y: 0}) || win.Row.End != (PointPayload{X: 0, Y: 4}) {
		t.Errorf("win row = %+v", win.Row)
	}

	// The win disappears when the cursor steps behind it.
	resp = postJSON(t, base+"/undo", nil)
	cmd = CommandResponse{}
	decodeBody(t, resp, &cmd)
	if cmd.State.Win != nil {
		t.Error("win still visible after undoing the winning move")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)
	base := ts.URL + "/api/game/" + id

	var cmd CommandResponse
	for _, m := range []MoveRequest{{X: 7, Y: 7}, {X: 8, Y: 8}, {X: 7, Y: 8}} {
		resp := postJSON(t, base+"/move", m)
		decodeBody(t, resp, &cmd)
	}

	resp, err := http.Get(base + "/export")
	if err != nil {
		t.Fatalf("GET export: %v", err)
	}
	var export ExportResponse
	decodeBody(t, resp, &export)
	if !strings.HasPrefix(export.Token, "gomoku://") {
		t.Fatalf("export token = %q", export.Token)
	}

	// A fresh session created from the token replays the same game.
	resp = postJSON(t, ts.URL+"/api/game", NewGameRequest{Token: export.Token})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create from token: status %d", resp.StatusCode)
	}
	var state StateResponse
	decodeBody(t, resp, &state)
	if state.Index != 3 || state.Total != 3 || state.Turn != "white" {
		t.Errorf("imported state: %+v", state)
	}

	// Import into an existing session replaces its game.
	other := createSession(t, ts)
	resp = postJSON(t, ts.URL+"/api/game/"+other+"/import", ImportRequest{Token: export.Token})
	decodeBody(t, resp, &cmd)
	if !cmd.Applied || cmd.State.Total != 3 {
		t.Errorf("import: %+v", cmd)
	}
}

func TestRequestValidation(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"unknown session", "/api/game/deadbeef/move", MoveRequest{X: 7, Y: 7}, http.StatusNotFound, "SESSION_NOT_FOUND"},
		{"point out of board", "/api/game/" + id + "/move", MoveRequest{X: 15, Y: 0}, http.StatusBadRequest, "POINT_OUT_OF_BOARD"},
		{"bad stone name", "/api/game/" + id + "/move", MoveRequest{X: 1, Y: 1, Stone: "red"}, http.StatusBadRequest, "INVALID_STONE"},
		{"jump out of range", "/api/game/" + id + "/jump", JumpRequest{Index: 99}, http.StatusBadRequest, "INDEX_OUT_OF_RANGE"},
		{"bad import token", "/api/game/" + id + "/import", ImportRequest{Token: "chess://x/"}, http.StatusUnprocessableEntity, "INVALID_TOKEN"},
		{"bad create token", "/api/game", NewGameRequest{Token: "gomoku://_w==/"}, http.StatusUnprocessableEntity, "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var errResp ErrorResponse
			decodeBody(t, resp, &errResp)
			if errResp.Code != tt.code {
				t.Errorf("code = %q, want %q", errResp.Code, tt.code)
			}
		})
	}
}

func TestSessionLimitEndpoint(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 8; i++ {
		createSession(t, ts)
	}
	resp := postJSON(t, ts.URL+"/api/game", NewGameRequest{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestWebSocketSession(t *testing.T) {
	ts := newTestServer(t)
	id := createSession(t, ts)

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/api/game/" + id + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	send := func(msgType, msgID string, payload interface{}) WSResponse {
		t.Helper()
		msg := map[string]interface{}{"type": msgType, "id": msgID}
		if payload != nil {
			msg["payload"] = payload
		}
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("write %s: %v", msgType, err)
		}
		var resp WSResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("read %s response: %v", msgType, err)
		}
		if resp.ID != msgID {
			t.Fatalf("%s: response ID = %q, want %q", msgType, resp.ID, msgID)
		}
		return resp
	}

	if resp := send("ping", "1", nil); resp.Type != "pong" {
		t.Errorf("ping: type = %q, want pong", resp.Type)
	}

	resp := send("move", "2", MoveRequest{X: 7, Y: 7})
	if resp.Type != "result" {
		t.Fatalf("move: %+v", resp)
	}

	resp = send("undo", "3", nil)
	if resp.Type != "result" {
		t.Fatalf("undo: %+v", resp)
	}
	// Payload comes back as a generic map; re-marshal to check state.
	buf, _ := json.Marshal(resp.Payload)
	var cmd CommandResponse
	if err := json.Unmarshal(buf, &cmd); err != nil {
		t.Fatalf("unmarshal undo payload: %v", err)
	}
	if !cmd.Applied || cmd.State.Index != 0 || cmd.State.Total != 1 {
		t.Errorf("undo state: %+v", cmd)
	}

	if resp := send("jump", "4", JumpRequest{Index: 5}); resp.Type != "error" {
		t.Errorf("out-of-range jump: type = %q, want error", resp.Type)
	}

	resp = send("export", "5", nil)
	buf, _ = json.Marshal(resp.Payload)
	var export ExportResponse
	if err := json.Unmarshal(buf, &export); err != nil {
		t.Fatalf("unmarshal export payload: %v", err)
	}
	if !strings.HasPrefix(export.Token, "gomoku://") {
		t.Errorf("export token = %q", export.Token)
	}

	if resp := send("nonsense", "6", nil); resp.Type != "error" {
		t.Errorf("unknown type: type = %q, want error", resp.Type)
	}
}

func TestCORSHeaders(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/health", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}
