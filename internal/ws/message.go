package ws

import (
	"encoding/json"

	"github.com/vladimirvolkov/pong/internal/match"
)

// Client -> Server message types
const (
	MsgPaddleInput uint8 = 0x01
	MsgCommand     uint8 = 0x02
	MsgPing        uint8 = 0x04
)

// Server -> Client message types
const (
	MsgMatchState uint8 = 0x81
	MsgMatchStart uint8 = 0x82
	MsgGameOver   uint8 = 0x83
	MsgGoal       uint8 = 0x84
	MsgPaddleHit  uint8 = 0x85
	MsgPong       uint8 = 0x86
)

// FromClient reports whether typ is a message a client may send.
func FromClient(typ uint8) bool {
	switch typ {
	case MsgPaddleInput, MsgCommand, MsgPing:
		return true
	}
	return false
}

// Superseded reports whether a newer message of the same type replaces typ,
// so dropping one under backpressure loses nothing.
func Superseded(typ uint8) bool {
	return typ == MsgMatchState
}

type Message struct {
	Type    uint8           `json:"type"`
	Tick    uint64          `json:"tick"`
	Payload json.RawMessage `json:"payload"`
}

// PaddleInputPayload carries held movement for both paddles, -1 down .. 1 up.
type PaddleInputPayload struct {
	Left  int8 `json:"left"`
	Right int8 `json:"right"`
}

type CommandPayload = match.Commands

type PingPayload struct {
	ClientTime uint64 `json:"clientTime"`
}

type PongPayload struct {
	ClientTime uint64 `json:"clientTime"`
	ServerTime uint64 `json:"serverTime"`
}

type MatchStartPayload struct {
	RoomID    string  `json:"roomId"`
	TickRate  int     `json:"tickRate"`
	WinScore  int     `json:"winScore"`
	Mercy     int     `json:"mercyScore"`
	CourtW    float64 `json:"courtWidth"`
	CourtH    float64 `json:"courtHeight"`
	GoalPause float64 `json:"goalPause"`
}

type GoalPayload struct {
	Scorer match.Side  `json:"scorer"`
	Score  match.Score `json:"score"`
}

type GameOverPayload struct {
	Winner  match.Side    `json:"winner"`
	WinType match.WinType `json:"winType"`
	Score   match.Score   `json:"score"`
}

type PaddleHitPayload struct {
	Side match.Side `json:"side"`
}

func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func Decode(data []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return msg, err
}

func NewMessage(typ uint8, tick uint64, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Type:    typ,
		Tick:    tick,
		Payload: json.RawMessage(data),
	}, nil
}
