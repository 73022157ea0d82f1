package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/vladimirvolkov/pong/internal/match"
)

func TestSpaceDependsOnPhase(t *testing.T) {
	tests := []struct {
		phase match.Phase
		want  match.Commands
	}{
		{match.PhaseWaitingToServe, match.Commands{Serve: true}},
		{match.PhasePlaying, match.Commands{}},
		{match.PhaseGoalScored, match.Commands{}},
		{match.PhaseGameOver, match.Commands{RestartMatch: true}},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			var c Controls
			c.HandleKey(tcell.KeyRune, ' ', tt.phase)
			if got := c.Take().Commands; got != tt.want {
				t.Errorf("commands = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEscapeOnlyQuitsFinishedMatch(t *testing.T) {
	var c Controls
	c.HandleKey(tcell.KeyEscape, 0, match.PhasePlaying)
	if c.Take().Commands.QuitToMenu {
		t.Error("escape quit a running match")
	}
	c.HandleKey(tcell.KeyEscape, 0, match.PhaseGameOver)
	if !c.Take().Commands.QuitToMenu {
		t.Error("escape ignored on game over")
	}
}

func TestCommandsAreOneShot(t *testing.T) {
	var c Controls
	c.HandleKey(tcell.KeyRune, ' ', match.PhaseWaitingToServe)
	if !c.Take().Commands.Serve {
		t.Fatal("serve not delivered")
	}
	if c.Take().Commands.Serve {
		t.Error("serve delivered twice")
	}
}

func TestPaddleHoldExpires(t *testing.T) {
	var c Controls
	c.HandleKey(tcell.KeyRune, 'w', match.PhasePlaying)
	c.HandleKey(tcell.KeyDown, 0, match.PhasePlaying)

	for i := 0; i < holdTicks; i++ {
		in := c.Take()
		if in.Paddles[match.Left] != 1 || in.Paddles[match.Right] != -1 {
			t.Fatalf("tick %d paddles = %v", i, in.Paddles)
		}
	}
	if in := c.Take(); in.Paddles != [2]float64{} {
		t.Errorf("hold did not expire: %v", in.Paddles)
	}
}

func TestCtrlCExits(t *testing.T) {
	var c Controls
	c.HandleKey(tcell.KeyCtrlC, 0, match.PhasePlaying)
	if !c.Exit() {
		t.Error("ctrl-c should exit")
	}
}
