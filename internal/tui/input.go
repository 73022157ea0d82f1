package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vladimirvolkov/pong/internal/game"
	"github.com/vladimirvolkov/pong/internal/match"
)

// Terminals report key presses and auto-repeat, never releases, so a press
// keeps its paddle moving for holdTicks.
const holdTicks = 8

type hold struct {
	dir   float64
	ticks int
}

// Controls turns key presses into per-tick game input.
type Controls struct {
	paddles  [2]hold
	commands match.Commands
	exit     bool
}

// HandleKey records one key press. SPACE serves or restarts and ESC leaves
// the finished match, depending on phase.
func (c *Controls) HandleKey(key tcell.Key, ch rune, phase match.Phase) {
	switch key {
	case tcell.KeyCtrlC:
		c.exit = true
	case tcell.KeyEscape:
		if phase == match.PhaseGameOver {
			c.commands.QuitToMenu = true
		}
	case tcell.KeyUp:
		c.paddles[match.Right] = hold{dir: 1, ticks: holdTicks}
	case tcell.KeyDown:
		c.paddles[match.Right] = hold{dir: -1, ticks: holdTicks}
	case tcell.KeyRune:
		switch ch {
		case ' ':
			switch phase {
			case match.PhaseWaitingToServe:
				c.commands.Serve = true
			case match.PhaseGameOver:
				c.commands.RestartMatch = true
			}
		case 'w', 'W':
			c.paddles[match.Left] = hold{dir: 1, ticks: holdTicks}
		case 's', 'S':
			c.paddles[match.Left] = hold{dir: -1, ticks: holdTicks}
		}
	}
}

// Exit reports whether the player asked to close the program.
func (c *Controls) Exit() bool {
	return c.exit
}

// Take returns this tick's input, consuming commands and ageing holds.
func (c *Controls) Take() game.Input {
	var in game.Input
	for i := range c.paddles {
		if c.paddles[i].ticks > 0 {
			in.Paddles[i] = c.paddles[i].dir
			c.paddles[i].ticks--
		}
	}
	in.Commands = c.commands
	c.commands = match.Commands{}
	return in
}
