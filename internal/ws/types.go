package ws

import (
	"encoding/json"

	"github.com/benbeisheim/checkers-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypePickUp     MessageType = "pickUp"
	MessageTypeDrop       MessageType = "drop"
	MessageTypeMove       MessageType = "move"
	MessageTypeReset      MessageType = "reset"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeMoveResult MessageType = "moveResult"
	MessageTypeNotice     MessageType = "notice"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CellPayload carries the target of pickUp, drop and legalMoves.
type CellPayload struct {
	Cell model.Cell `json:"cell"`
}

type MovePayload struct {
	From model.Cell `json:"from"`
	To   model.Cell `json:"to"`
}

type LegalMovesPayload struct {
	Cell         model.Cell   `json:"cell"`
	Destinations []model.Cell `json:"destinations"`
}

type NoticePayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NewMessage wraps payload into an envelope of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	if payload == nil {
		return Message{Type: t}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
