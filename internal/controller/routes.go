package controller

import (
	"github.com/benbeisheim/checkers-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST API under /api and the live board under /ws.
func RegisterRoutes(app *fiber.App, gc *GameController, wsc *WebSocketController, wsConfig websocket.Config) {
	app.Get("/ws/game/:gameId",
		middleware.RequireGameID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsc.HandleConnection, wsConfig),
	)

	api := app.Group("/api")
	api.Post("/game", gc.CreateGame)

	requireGame := middleware.RequireGameID()
	api.Get("/game/:gameId", requireGame, gc.GetGameState)
	api.Delete("/game/:gameId", requireGame, gc.DeleteGame)
	api.Get("/game/:gameId/moves", requireGame, gc.LegalMoves)
	api.Post("/game/:gameId/move", requireGame, gc.MakeMove)
	api.Post("/game/:gameId/reset", requireGame, gc.Reset)
	api.Get("/game/:gameId/score", requireGame, gc.Score)
}
