package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	actionState = "game:state"
	actionPlay  = "game:play"
	actionReset = "game:reset"
	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type PlayRequest struct {
	Cell *int `json:"cell"`
}

type ResponsePayload struct {
	Game    *entity.Snapshot `json:"game,omitempty"`
	Status  string           `json:"status,omitempty"`
	Applied *bool            `json:"applied,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func gamePayload(snapshot entity.Snapshot) ResponsePayload {
	return ResponsePayload{
		Game:   &snapshot,
		Status: snapshot.StatusText(),
	}
}

func encodeMessage(action string, payload ResponsePayload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: body})
}
