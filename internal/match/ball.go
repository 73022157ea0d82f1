package match

// BallHandle names one spawned ball. Zero is never a live handle.
type BallHandle uint64

// BallManager owns the ball entity. Serve on a handle that no longer exists
// is a no-op, and Despawn is idempotent.
type BallManager interface {
	Spawn(center Vec2) BallHandle
	Serve(h BallHandle, velocity Vec2)
	Despawn(h BallHandle)
	Center() Vec2
}
