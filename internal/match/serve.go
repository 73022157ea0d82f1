package match

import "math"

// Serve angle limits in degrees off the horizontal.
const (
	MinServeAngle = 15.0
	MaxServeAngle = 45.0
)

// Rand is the random source used for serves. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// ServeDirector tracks who serves next and rolls serve velocities.
type ServeDirector struct {
	next Side
	rng  Rand
}

func NewServeDirector(rng Rand) *ServeDirector {
	return &ServeDirector{next: Left, rng: rng}
}

func (d *ServeDirector) NextServer() Side {
	return d.next
}

func (d *ServeDirector) SetNextServer(side Side) {
	d.next = side
}

// ComputeServeVelocity draws an angle uniformly in [minAngleDeg, maxAngleDeg]
// and a fair coin for the vertical sign. Left serves toward +x, Right toward -x.
//
// Two draws are taken from the random source per call, angle first.
func (d *ServeDirector) ComputeServeVelocity(side Side, speed, minAngleDeg, maxAngleDeg float64) Vec2 {
	if maxAngleDeg < minAngleDeg {
		minAngleDeg, maxAngleDeg = maxAngleDeg, minAngleDeg
	}
	angle := minAngleDeg + d.rng.Float64()*(maxAngleDeg-minAngleDeg)

	vertical := 1.0
	if d.rng.Float64() >= 0.5 {
		vertical = -1.0
	}
	horizontal := 1.0
	if side == Right {
		horizontal = -1.0
	}

	rad := angle * math.Pi / 180
	return Vec2{
		X: speed * math.Cos(rad) * horizontal,
		Y: speed * math.Sin(rad) * vertical,
	}
}
