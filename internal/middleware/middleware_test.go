package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/game/:gameId", RequireGameID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("gameID").(string))
	})
	app.Get("/ws/:gameId", RequireGameID(), WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireGameID(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/game/not-a-uuid", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	id := "6F9619FF-8B86-D011-B42D-00C04FC964FF"
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/game/"+id, nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || string(body) != "6f9619ff-8b86-d011-b42d-00c04fc964ff" {
		t.Fatalf("expected normalized id, got %d %q", resp.StatusCode, body)
	}
}

func TestWebSocketUpgradeRequiresUpgrade(t *testing.T) {
	app := newApp()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws/6f9619ff-8b86-d011-b42d-00c04fc964ff", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", resp.StatusCode)
	}
}
