package match

import "fmt"

type Side uint8

const (
	Left Side = iota
	Right
)

// Opposite returns the other side of the court.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	switch s {
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

func (s Side) MarshalText() ([]byte, error) {
	switch s {
	case Left:
		return []byte("left"), nil
	case Right:
		return []byte("right"), nil
	}
	return nil, fmt.Errorf("invalid side %d", uint8(s))
}

// Vec2 is a 2D vector in court units, y pointing up.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
