package service

import (
	"fmt"

	"github.com/benbeisheim/checkers-backend/internal/model"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID, err := gs.gameManager.CreateGame()
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.State, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.State{}, err
	}
	return table.State(), nil
}

func (gs *GameService) LegalDestinations(gameID string, cell model.Cell) ([]model.Cell, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return table.LegalDestinations(cell), nil
}

func (gs *GameService) PickUp(gameID string, cell model.Cell) error {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return table.PickUp(cell)
}

func (gs *GameService) Drop(gameID string, cell model.Cell) (model.MoveResult, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}
	return table.Drop(cell)
}

func (gs *GameService) HandleMove(gameID string, from, to model.Cell) (model.MoveResult, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}
	return table.AttemptMove(from, to)
}

func (gs *GameService) Reset(gameID string) (model.State, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.State{}, err
	}
	return table.Reset(), nil
}

func (gs *GameService) Score(gameID string) (Score, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Score{}, err
	}
	return table.Score(), nil
}

func (gs *GameService) RegisterConnection(gameID string, conn Conn) (string, error) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return table.RegisterConnection(conn)
}

func (gs *GameService) UnregisterConnection(gameID string, connID string) {
	table, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	table.UnregisterConnection(connID)
}
