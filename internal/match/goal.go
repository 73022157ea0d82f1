package match

import "fmt"

type TagKind uint8

const (
	TagBall TagKind = iota
	TagGoal
	TagPaddle
	TagBoundary
)

// Tag identifies a physics body. Side is meaningful for goals and paddles only.
type Tag struct {
	Kind TagKind `json:"kind"`
	Side Side    `json:"side"`
}

func BallTag() Tag            { return Tag{Kind: TagBall} }
func GoalTag(side Side) Tag   { return Tag{Kind: TagGoal, Side: side} }
func PaddleTag(side Side) Tag { return Tag{Kind: TagPaddle, Side: side} }
func BoundaryTag() Tag        { return Tag{Kind: TagBoundary} }

func (t Tag) String() string {
	switch t.Kind {
	case TagBall:
		return "Ball"
	case TagGoal:
		return fmt.Sprintf("Goal(%s)", t.Side)
	case TagPaddle:
		return fmt.Sprintf("Paddle(%s)", t.Side)
	case TagBoundary:
		return "Boundary"
	}
	return fmt.Sprintf("Tag(%d)", t.Kind)
}

// CollisionStart is reported by the physics step the first tick two bodies touch.
type CollisionStart struct {
	A Tag
	B Tag
}

// GoalEvent is produced once per confirmed goal.
type GoalEvent struct {
	ScoringSide Side
}

// DetectGoals filters the tick's collision starts down to ball-vs-goal pairs.
// The side whose goal was hit is the side that conceded.
func DetectGoals(collisions []CollisionStart) []GoalEvent {
	var events []GoalEvent
	for _, c := range collisions {
		goal, ok := ballAgainst(c, TagGoal)
		if !ok {
			continue
		}
		events = append(events, GoalEvent{ScoringSide: goal.Side.Opposite()})
	}
	return events
}

// PaddleContacts returns the paddles the ball started touching this tick.
func PaddleContacts(collisions []CollisionStart) []Side {
	var sides []Side
	for _, c := range collisions {
		if paddle, ok := ballAgainst(c, TagPaddle); ok {
			sides = append(sides, paddle.Side)
		}
	}
	return sides
}

func ballAgainst(c CollisionStart, kind TagKind) (Tag, bool) {
	switch {
	case c.A.Kind == TagBall && c.B.Kind == kind:
		return c.B, true
	case c.B.Kind == TagBall && c.A.Kind == kind:
		return c.A, true
	}
	return Tag{}, false
}
