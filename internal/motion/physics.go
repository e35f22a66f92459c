package motion

import (
	"math"
	"time"
)

// Vanilla-compliant physics constants (§4.10.1). Unlike the source's full
// WASD/sprint/sneak acceleration model, this controller only ever moves
// toward a waypoint, so the constant set is the reduced one the spec names.
const (
	Gravity           = -0.08
	VerticalDrag      = 0.98
	TerminalVelocity  = -3.92
	JumpVelocity      = 0.42
	JumpCooldownTicks = 10

	HorizontalSpeed = 4.317 // cells/second
	TickRate        = 50 * time.Millisecond

	PlayerHalfWidth = 0.3
	PlayerHeight    = 1.8

	ArrivalRadius3D   = 1.5
	WaypointRadiusXZ  = 0.7
	StuckXZThreshold  = 0.05
	JumpAheadDropY    = 0.5
	MaxTurnSpeedDeg   = 18.0
	StepUpHeight      = 0.6
	RecalcInterval    = 5 * time.Second
	TeleportCooldown  = 10
)

// PlannedStep returns one tick's worth of horizontal movement toward
// (targetX, targetZ) from (x, z): the waypoint-relative direction scaled by
// min(step/xzDist, 1), where step = HorizontalSpeed * TickRate.
func PlannedStep(x, z, targetX, targetZ float64) (dx, dz float64) {
	stepLen := HorizontalSpeed * TickRate.Seconds()
	toX := targetX - x
	toZ := targetZ - z
	dist := xzDistance(x, z, targetX, targetZ)
	if dist == 0 {
		return 0, 0
	}
	scale := stepLen / dist
	if scale > 1 {
		scale = 1
	}
	return toX * scale, toZ * scale
}

func xzDistance(x1, z1, x2, z2 float64) float64 {
	dx := x2 - x1
	dz := z2 - z1
	return math.Sqrt(dx*dx + dz*dz)
}

// ApplyGravity integrates one tick of vertical physics: gravity while
// airborne, drag, terminal-velocity clamp, and the on-ground snap.
func ApplyGravity(vy float64, onGround bool) float64 {
	if !onGround {
		vy += Gravity
	}
	vy *= VerticalDrag
	if vy < TerminalVelocity {
		vy = TerminalVelocity
	}
	if onGround && vy < 0 {
		vy = 0
	}
	return vy
}
