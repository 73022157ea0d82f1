package match

import "fmt"

type Phase uint8

const (
	PhaseWaitingToServe Phase = iota
	PhasePlaying
	PhaseGoalScored
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWaitingToServe:
		return "waiting_to_serve"
	case PhasePlaying:
		return "playing"
	case PhaseGoalScored:
		return "goal_scored"
	case PhaseGameOver:
		return "game_over"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
