package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type testServer struct {
	app *fiber.App
	gs  *service.GameService
	wsc *WebSocketController
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gs := service.NewGameService(service.NewGameManager(nil))
	wsc := NewWebSocketController(gs)
	app := fiber.New()
	RegisterRoutes(app, NewGameController(gs), wsc, websocket.Config{})
	return &testServer{app: app, gs: gs, wsc: wsc}
}

func (s *testServer) do(t *testing.T, method, path, body string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (s *testServer) createGame(t *testing.T) string {
	t.Helper()
	var created struct {
		GameID string `json:"game_id"`
	}
	if code := s.do(t, http.MethodPost, "/api/game", "", &created); code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if created.GameID == "" {
		t.Fatalf("expected a game id")
	}
	return created.GameID
}

func TestGameLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	id := s.createGame(t)

	var state model.State
	if code := s.do(t, http.MethodGet, "/api/game/"+id, "", &state); code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if state.ToMove != model.Black || state.Remaining.White != 12 {
		t.Fatalf("unexpected opening state %+v", state)
	}

	var moves struct {
		Cell         model.Cell   `json:"cell"`
		Destinations []model.Cell `json:"destinations"`
	}
	if code := s.do(t, http.MethodGet, "/api/game/"+id+"/moves?col=1&row=2", "", &moves); code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(moves.Destinations) != 2 {
		t.Fatalf("expected two destinations, got %v", moves.Destinations)
	}

	var moved struct {
		Accepted bool             `json:"accepted"`
		Result   model.MoveResult `json:"result"`
		State    model.State      `json:"state"`
	}
	body := `{"from":{"col":1,"row":2},"to":{"col":2,"row":3}}`
	if code := s.do(t, http.MethodPost, "/api/game/"+id+"/move", body, &moved); code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !moved.Accepted || moved.State.ToMove != model.White {
		t.Fatalf("expected accepted move passing the turn, got %+v", moved.Result)
	}

	var score service.Score
	if code := s.do(t, http.MethodGet, "/api/game/"+id+"/score", "", &score); code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if score.White != 12 || score.Black != 12 || score.Winner != nil {
		t.Fatalf("unexpected score %+v", score)
	}

	if code := s.do(t, http.MethodPost, "/api/game/"+id+"/reset", "", &state); code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if state.ToMove != model.Black || state.LastMove != nil {
		t.Fatalf("expected fresh game after reset")
	}

	if code := s.do(t, http.MethodDelete, "/api/game/"+id, "", nil); code != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code := s.do(t, http.MethodGet, "/api/game/"+id, "", nil); code != fiber.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
}

func TestIllegalMoveIsNotice(t *testing.T) {
	s := newTestServer(t)
	id := s.createGame(t)

	var resp struct {
		Error  string `json:"error"`
		Notice bool   `json:"notice"`
	}
	body := `{"from":{"col":0,"row":5},"to":{"col":1,"row":4}}`
	if code := s.do(t, http.MethodPost, "/api/game/"+id+"/move", body, &resp); code != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if !resp.Notice || !strings.Contains(resp.Error, "black's turn") {
		t.Fatalf("expected turn notice, got %+v", resp)
	}
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t)
	id := s.createGame(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "malformed id", method: http.MethodGet, path: "/api/game/xyz", want: fiber.StatusBadRequest},
		{name: "unknown id", method: http.MethodGet, path: "/api/game/6f9619ff-8b86-d011-b42d-00c04fc964ff", want: fiber.StatusNotFound},
		{name: "cell off board", method: http.MethodGet, path: "/api/game/" + id + "/moves?col=8&row=0", want: fiber.StatusBadRequest},
		{name: "missing destination", method: http.MethodPost, path: "/api/game/" + id + "/move", body: `{"from":{"col":1,"row":2}}`, want: fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := s.do(t, tt.method, tt.path, tt.body, nil); code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, code)
			}
		})
	}
}

func TestHandleMessage(t *testing.T) {
	s := newTestServer(t)
	id := s.createGame(t)

	msg := func(typ ws.MessageType, payload interface{}) ws.Message {
		m, err := ws.NewMessage(typ, payload)
		if err != nil {
			t.Fatalf("build message: %v", err)
		}
		return m
	}

	replies, err := s.wsc.handleMessage(id, msg(ws.MessageTypePickUp, ws.CellPayload{Cell: model.Cell{Col: 0, Row: 5}}))
	if err != nil {
		t.Fatalf("pick up: %v", err)
	}
	if len(replies) != 1 || replies[0].Type != ws.MessageTypeNotice {
		t.Fatalf("expected a notice for picking up the wrong side, got %+v", replies)
	}

	replies, err = s.wsc.handleMessage(id, msg(ws.MessageTypeLegalMoves, ws.CellPayload{Cell: model.Cell{Col: 3, Row: 2}}))
	if err != nil {
		t.Fatalf("legal moves: %v", err)
	}
	var legal ws.LegalMovesPayload
	if err := json.Unmarshal(replies[0].Payload, &legal); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(legal.Destinations) != 2 {
		t.Fatalf("expected two destinations, got %v", legal.Destinations)
	}

	if replies, err = s.wsc.handleMessage(id, msg(ws.MessageTypePickUp, ws.CellPayload{Cell: model.Cell{Col: 3, Row: 2}})); err != nil || len(replies) != 0 {
		t.Fatalf("expected silent pick up, got %v %v", replies, err)
	}
	replies, err = s.wsc.handleMessage(id, msg(ws.MessageTypeDrop, ws.CellPayload{Cell: model.Cell{Col: 4, Row: 3}}))
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	var result model.MoveResult
	if err := json.Unmarshal(replies[0].Payload, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if replies[0].Type != ws.MessageTypeMoveResult || !result.Accepted || result.ToMove != model.White {
		t.Fatalf("expected accepted drop, got %+v", result)
	}

	if _, err := s.wsc.handleMessage(id, ws.Message{Type: "castle"}); err == nil {
		t.Fatalf("expected unknown message type to fail")
	}
	if _, err := s.wsc.handleMessage("missing", ws.Message{Type: ws.MessageTypeReset}); err == nil {
		t.Fatalf("expected reset of unknown game to fail")
	}
}
