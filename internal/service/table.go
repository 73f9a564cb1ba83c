package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Conn is the part of a websocket connection a table writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections watching a specific table
type tableConnections struct {
	connections map[string]Conn // connID -> connection
	mu          sync.RWMutex
}

// Table owns one game. Every input event runs under mu, so the game only
// ever sees one caller at a time.
type Table struct {
	ID          string
	mu          sync.Mutex
	game        *model.Game
	connections *tableConnections
}

type Score struct {
	White  int         `json:"white"`
	Black  int         `json:"black"`
	Winner *model.Side `json:"winner"`
}

func newTable(id string, tracer model.Tracer) *Table {
	t := &Table{
		ID: id,
		connections: &tableConnections{
			connections: make(map[string]Conn),
		},
	}
	t.game = model.NewGame(
		model.WithTracer(tracer),
		model.WithRenderHook(t.broadcastState),
	)
	return t
}

func (t *Table) State() model.State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.game.State()
}

func (t *Table) LegalDestinations(c model.Cell) []model.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.game.LegalDestinations(c)
}

func (t *Table) PickUp(c model.Cell) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.game.PickUp(c)
}

func (t *Table) Drop(c model.Cell) (model.MoveResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.game.Drop(c)
}

func (t *Table) AttemptMove(from, to model.Cell) (model.MoveResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	log.Debugw("attempting move", "table", t.ID, "from", from, "to", to)
	return t.game.AttemptMove(from, to)
}

func (t *Table) Reset() model.State {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.game.Reset()
	return t.game.State()
}

func (t *Table) Score() Score {
	t.mu.Lock()
	defer t.mu.Unlock()

	score := Score{
		White: t.game.PieceCount(model.White),
		Black: t.game.PieceCount(model.Black),
	}
	if winner, over := t.game.Winner(); over {
		score.Winner = &winner
	}
	return score
}

// RegisterConnection adds a viewer and sends it the current state. The
// returned id is used to unregister it.
func (t *Table) RegisterConnection(conn Conn) (string, error) {
	connID := uuid.NewString()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.connections.mu.Lock()
	t.connections.connections[connID] = conn
	t.connections.mu.Unlock()
	log.Infow("registered connection", "table", t.ID, "conn", connID)

	if err := writeState(conn, t.game.State()); err != nil {
		t.UnregisterConnection(connID)
		return "", fmt.Errorf("send initial state: %w", err)
	}
	return connID, nil
}

func (t *Table) UnregisterConnection(connID string) {
	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()

	if _, exists := t.connections.connections[connID]; exists {
		log.Infow("unregistering connection", "table", t.ID, "conn", connID)
		delete(t.connections.connections, connID)
	}
}

// close drops every viewer of the table.
func (t *Table) close() {
	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()

	for connID, conn := range t.connections.connections {
		if err := conn.Close(); err != nil {
			log.Warnw("close connection", "table", t.ID, "conn", connID, "error", err)
		}
		delete(t.connections.connections, connID)
	}
}

// broadcastState is the game's render hook. It runs with t.mu held.
func (t *Table) broadcastState(state model.State) {
	// Get a snapshot of connections under the connections mutex
	t.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(t.connections.connections))
	for connID, conn := range t.connections.connections {
		activeConnections[connID] = conn
	}
	t.connections.mu.RUnlock()

	for connID, conn := range activeConnections {
		if err := writeState(conn, state); err != nil {
			log.Warnw("failed to send state", "table", t.ID, "conn", connID, "error", err)
			t.UnregisterConnection(connID)
		}
	}
}

func writeState(conn Conn, state model.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return conn.WriteJSON(ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	})
}
