package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serializes writes: table broadcasts and direct replies reach the
// same socket from different goroutines.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteJSON(v)
}

func (l *lockedConn) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.Close()
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	conn := &lockedConn{conn: c}

	connID, err := wsc.gameService.RegisterConnection(gameID, conn)
	if err != nil {
		log.Warnf("failed to register connection for game %s: %v", gameID, err)
		sendError(conn, err.Error())
		conn.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("websocket closed", "game", gameID, "conn", connID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			sendError(conn, fmt.Sprintf("parse error: %v", err))
			continue
		}

		replies, err := wsc.handleMessage(gameID, msg)
		if err != nil {
			log.Warnw("handle message", "game", gameID, "type", msg.Type, "error", err)
			sendError(conn, err.Error())
			continue
		}
		for _, reply := range replies {
			if err := conn.WriteJSON(reply); err != nil {
				log.Warnw("write reply", "game", gameID, "conn", connID, "error", err)
				return
			}
		}
	}
}

// handleMessage applies one inbound message and returns what to send back
// to its sender. State changes reach every viewer through the table's
// broadcast; rejected input comes back as a notice.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) ([]ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypePickUp:
		var p ws.CellPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, err
		}
		return noticeOr(nil, wsc.gameService.PickUp(gameID, p.Cell))

	case ws.MessageTypeDrop:
		var p ws.CellPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, err
		}
		result, err := wsc.gameService.Drop(gameID, p.Cell)
		return resultOr(result, err)

	case ws.MessageTypeMove:
		var p ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, err
		}
		result, err := wsc.gameService.HandleMove(gameID, p.From, p.To)
		return resultOr(result, err)

	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(gameID)
		return nil, err

	case ws.MessageTypeLegalMoves:
		var p ws.CellPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, err
		}
		destinations, err := wsc.gameService.LegalDestinations(gameID, p.Cell)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, ws.LegalMovesPayload{Cell: p.Cell, Destinations: destinations})
		if err != nil {
			return nil, err
		}
		return []ws.Message{reply}, nil

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func resultOr(result model.MoveResult, err error) ([]ws.Message, error) {
	if err != nil {
		return noticeOr(nil, err)
	}
	reply, err := ws.NewMessage(ws.MessageTypeMoveResult, result)
	if err != nil {
		return nil, err
	}
	return []ws.Message{reply}, nil
}

// noticeOr turns a rejected input into a notice for the sender and passes
// any other error through.
func noticeOr(replies []ws.Message, err error) ([]ws.Message, error) {
	if err == nil {
		return replies, nil
	}
	if !model.IsRejection(err) {
		return nil, err
	}
	title := "Illegal move!"
	if errors.Is(err, model.ErrGameOver) {
		title = "Game over!"
	}
	notice, mErr := ws.NewMessage(ws.MessageTypeNotice, ws.NoticePayload{Title: title, Message: err.Error()})
	if mErr != nil {
		return nil, mErr
	}
	return []ws.Message{notice}, nil
}

// Helper method to send error messages
func sendError(conn service.Conn, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, errorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Debugw("send error", "error", err)
	}
}

type errorPayload struct {
	Error string `json:"error"`
}
