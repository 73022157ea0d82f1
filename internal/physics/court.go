package physics

import "math"

// Court geometry, origin at the court center, y up.
const (
	CourtWidth        = 800.0
	CourtHeight       = 600.0
	BoundaryThickness = 8.0
	GoalWidth         = 50.0

	PaddleWidth   = 12.0
	PaddleHeight  = CourtHeight * 0.125
	PaddleXOffset = 350.0
	PaddleSpeed   = 400.0

	BallRadius     = 8.0
	MaxBounceAngle = math.Pi / 3
)

// body ids used for contact tracking
type bodyID uint8

const (
	bodyTopBoundary bodyID = iota
	bodyBottomBoundary
	bodyLeftPaddle
	bodyRightPaddle
	bodyLeftGoal
	bodyRightGoal
)

type rect struct {
	minX, minY, maxX, maxY float64
}

// innerTop and innerBottom are the playable y limits between the boundaries.
func innerTop() float64    { return CourtHeight/2 - BoundaryThickness }
func innerBottom() float64 { return -CourtHeight/2 + BoundaryThickness }

func goalRect(left bool) rect {
	if left {
		return rect{minX: -CourtWidth / 2, minY: -CourtHeight / 2, maxX: -CourtWidth/2 + GoalWidth, maxY: CourtHeight / 2}
	}
	return rect{minX: CourtWidth/2 - GoalWidth, minY: -CourtHeight / 2, maxX: CourtWidth / 2, maxY: CourtHeight / 2}
}

func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// circleOverlaps reports whether a circle intersects r, returning the closest
// point on r to the circle center.
func circleOverlaps(cx, cy, radius float64, r rect) (bool, float64, float64) {
	closestX := clampF(cx, r.minX, r.maxX)
	closestY := clampF(cy, r.minY, r.maxY)
	dx := cx - closestX
	dy := cy - closestY
	return dx*dx+dy*dy < radius*radius, closestX, closestY
}
