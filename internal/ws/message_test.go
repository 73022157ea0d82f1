package ws

import (
	"encoding/json"
	"testing"

	"github.com/vladimirvolkov/pong/internal/match"
)

func TestNewMessageRoundTrip(t *testing.T) {
	msg, err := NewMessage(MsgGameOver, 42, GameOverPayload{
		Winner:  match.Right,
		WinType: match.WinMercy,
		Score:   match.Score{Left: 0, Right: 7},
	})
	if err != nil {
		t.Fatal(err)
	}
	data, err := Encode(msg)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != MsgGameOver || got.Tick != 42 {
		t.Fatalf("header = (0x%x, %d), want (0x%x, 42)", got.Type, got.Tick, MsgGameOver)
	}

	var wire map[string]any
	if err := json.Unmarshal(got.Payload, &wire); err != nil {
		t.Fatal(err)
	}
	if wire["winner"] != "right" || wire["winType"] != "Mercy win" {
		t.Errorf("payload = %v", wire)
	}
}

func TestCommandPayloadKeys(t *testing.T) {
	var cmd CommandPayload
	if err := json.Unmarshal([]byte(`{"serve":true,"restart":false,"quit":true}`), &cmd); err != nil {
		t.Fatal(err)
	}
	if !cmd.Serve || cmd.RestartMatch || !cmd.QuitToMenu {
		t.Errorf("decoded %+v", cmd)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("expected an error")
	}
}

func TestFromClient(t *testing.T) {
	tests := []struct {
		typ  uint8
		want bool
	}{
		{MsgPaddleInput, true},
		{MsgCommand, true},
		{MsgPing, true},
		{MsgMatchState, false},
		{MsgGameOver, false},
		{MsgPong, false},
		{0x00, false},
	}
	for _, tt := range tests {
		if got := FromClient(tt.typ); got != tt.want {
			t.Errorf("FromClient(0x%02x) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestOnlyMatchStateIsSuperseded(t *testing.T) {
	if !Superseded(MsgMatchState) {
		t.Error("match state should be superseded by the next tick")
	}
	for _, typ := range []uint8{MsgGoal, MsgGameOver, MsgPaddleHit, MsgMatchStart, MsgPong} {
		if Superseded(typ) {
			t.Errorf("event 0x%02x must not be treated as superseded", typ)
		}
	}
}
