// service/game_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// GameManager keeps every open table in memory, keyed by a uuid.
type GameManager struct {
	games  map[string]*Table
	tracer model.Tracer
	mu     sync.RWMutex
}

func NewGameManager(tracer model.Tracer) *GameManager {
	return &GameManager{
		games:  make(map[string]*Table),
		tracer: tracer,
	}
}

func (gm *GameManager) CreateGame() (string, error) {
	gameID := uuid.New().String()

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return "", errors.New("game already exists")
	}
	gm.games[gameID] = newTable(gameID, gm.tracer)
	log.Infow("created game", "game", gameID)
	return gameID, nil
}

func (gm *GameManager) GetGame(gameID string) (*Table, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	table, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return table, nil
}

// DeleteGame discards a table and disconnects its viewers.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	table, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if !exists {
		return ErrGameNotFound
	}
	table.close()
	log.Infow("deleted game", "game", gameID)
	return nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
