package controller

import (
	"errors"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type moveRequest struct {
	From *model.Cell `json:"from"`
	To   *model.Cell `json:"to"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(gameID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	cell := model.Cell{Col: c.QueryInt("col", -1), Row: c.QueryInt("row", -1)}
	if !cell.InBounds() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "col and row must be between 0 and 7",
		})
	}
	destinations, err := gc.gameService.LegalDestinations(gameID(c), cell)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"cell":         cell,
		"destinations": destinations,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil || req.From == nil || req.To == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must be {\"from\":{\"col\":..,\"row\":..},\"to\":{..}}",
		})
	}

	id := gameID(c)
	result, err := gc.gameService.HandleMove(id, *req.From, *req.To)
	if err != nil {
		return respondError(c, err)
	}
	state, err := gc.gameService.GetGameState(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"accepted": result.Accepted,
		"result":   result,
		"state":    state,
	})
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	state, err := gc.gameService.Reset(gameID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Score(c *fiber.Ctx) error {
	score, err := gc.gameService.Score(gameID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(score)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(gameID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func gameID(c *fiber.Ctx) string {
	id, _ := c.Locals("gameID").(string)
	return id
}

// respondError maps rule rejections to notices and everything else to the
// matching HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case model.IsRejection(err):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  err.Error(),
			"notice": true,
		})
	default:
		log.Errorf("request %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
