package motion

import (
	"math"
	"time"

	"github.com/ardenlabs/voxelbot/internal/nav"
)

// PathPlanner is the subset of the navigation core the controller needs to
// request a fresh or recalculated path. It is satisfied by nav.Plan bound
// to a nav.WorldAccess and nav.Options.
type PathPlanner func(start, goal nav.Cell) ([]nav.Cell, error)

// ArrivedFunc and ErrorFunc mirror the observable events the facade exposes
// (§4.11): the controller itself stays event-source agnostic and calls
// these directly rather than owning a bus.
type ArrivedFunc func()
type ErrorFunc func(error)

// Controller runs the per-tick motion algorithm described in §4.10: gravity,
// AABB-sweep collision with step-up, obstacle recovery, smooth yaw, and
// teleport handling. One Controller serves one client connection.
type Controller struct {
	world BlockSolid

	pos       Vec3
	velocityY float64 // vertical velocity only: horizontal motion is re-derived from the waypoint every tick, never accumulated
	yaw       float64
	pitch     float64
	onGround  bool

	jumpCooldown int

	path             []nav.Cell
	currentPathIndex int
	hasTarget        bool

	lastXZ Vec3

	recovery RecoveryState

	movementCooldown int
	awaitingTeleport bool
	teleportAnchor   Vec3
	justTeleported   bool

	sinceRecalc time.Duration

	pathfindingMode bool

	OnArrived ArrivedFunc
	OnError   ErrorFunc
}

func NewController(world BlockSolid, start Vec3, pathfindingMode bool) *Controller {
	return &Controller{
		world:           world,
		pos:             start,
		lastXZ:          start,
		onGround:        true,
		pathfindingMode: pathfindingMode,
	}
}

// SetPath installs a freshly planned route and resets path-following state.
func (c *Controller) SetPath(path []nav.Cell) {
	c.path = path
	c.currentPathIndex = 0
	c.hasTarget = len(path) > 0
	c.recovery = RecoveryState{}
	c.sinceRecalc = 0
}

func (c *Controller) Stop() {
	c.path = nil
	c.currentPathIndex = 0
	c.hasTarget = false
}

func (c *Controller) Position() Vec3 { return c.pos }
func (c *Controller) Yaw() float64   { return c.yaw }
func (c *Controller) Pitch() float64 { return c.pitch }
func (c *Controller) OnGround() bool { return c.onGround }

// ServerPositionReset implements §4.10.5: called when the play state
// receives a teleport-sync packet.
func (c *Controller) ServerPositionReset(anchor Vec3) {
	c.movementCooldown = TeleportCooldown
	c.awaitingTeleport = true
	c.velocityY = 0
	c.teleportAnchor = anchor
	c.justTeleported = true
}

// Tick runs one 50ms step of the algorithm in §4.10 and returns the
// position+rotation the caller should send, or ok=false if nothing should
// be sent this tick (cooldown or awaiting teleport).
func (c *Controller) Tick(plan PathPlanner) (pos Vec3, yaw, pitch float64, ok bool) {
	if c.movementCooldown > 0 {
		c.movementCooldown--
		if c.movementCooldown == 0 {
			c.awaitingTeleport = false
		}
		return Vec3{}, 0, 0, false
	}
	if c.justTeleported {
		c.pos = c.teleportAnchor
		c.velocityY = 0
		c.onGround = true
		c.justTeleported = false
		if path, err := c.replan(plan); err != nil {
			c.reportError(err)
		} else {
			c.SetPath(path)
		}
	}
	if c.awaitingTeleport {
		return Vec3{}, 0, 0, false
	}
	if !c.hasTarget || len(c.path) == 0 {
		c.Stop()
		return Vec3{}, 0, 0, false
	}

	goal := c.path[len(c.path)-1]
	if cellDistance(c.pos, goal) < ArrivalRadius3D {
		c.reportArrived()
		c.Stop()
		return Vec3{}, 0, 0, false
	}

	if c.currentPathIndex >= len(c.path) {
		if path, err := c.replan(plan); err != nil {
			c.reportError(err)
			c.Stop()
			return Vec3{}, 0, 0, false
		} else {
			c.SetPath(path)
		}
	}

	waypoint := c.path[c.currentPathIndex]
	wx, wz := float64(waypoint.X)+0.5, float64(waypoint.Z)+0.5
	if xzDistance(c.pos.X, c.pos.Z, wx, wz) < WaypointRadiusXZ {
		c.currentPathIndex++
		c.recovery = RecoveryState{}
		if c.currentPathIndex < len(c.path) {
			waypoint = c.path[c.currentPathIndex]
			wx, wz = float64(waypoint.X)+0.5, float64(waypoint.Z)+0.5
		}
	}

	moved := xzDistance(c.pos.X, c.pos.Z, c.lastXZ.X, c.lastXZ.Z)
	_, hasNext := c.nextWaypoint()
	action := c.recovery.NoteMovement(moved, c.onGround, hasNext)
	c.lastXZ = c.pos

	dx, dz := PlannedStep(c.pos.X, c.pos.Z, wx, wz)
	switch {
	case action.StrafeSign != 0:
		dx, dz = c.applyStrafe(dx, dz, action.StrafeSign)
	case action.BackupStep:
		dx, dz = -dx, -dz
	case action.SkipWaypoint:
		c.currentPathIndex++
	case action.Recalculate:
		if path, err := c.replan(plan); err != nil {
			c.reportError(err)
		} else {
			c.SetPath(path)
		}
	}

	wantsJump := action.Jump
	if nextNext, ok := c.nextNextWaypoint(); ok && c.onGround {
		if float64(nextNext.Y)-c.pos.Y > JumpAheadDropY {
			wantsJump = true
		}
	}
	if wantsJump && c.onGround && c.jumpCooldown == 0 {
		c.velocityY = JumpVelocity
		c.onGround = false
		c.jumpCooldown = JumpCooldownTicks
	}
	if c.jumpCooldown > 0 {
		c.jumpCooldown--
	}

	c.velocityY = ApplyGravity(c.velocityY, c.onGround)
	newPos, appliedDY, grounded := Sweep(c.world, c.pos, dx, c.velocityY, dz, c.onGround, c.pathfindingMode)
	c.pos = newPos
	c.onGround = grounded
	if appliedDY == 0 {
		c.velocityY = 0
	}

	c.updateYaw(dx, dz)

	c.sinceRecalc += TickRate
	if c.sinceRecalc >= RecalcInterval {
		c.sinceRecalc = 0
		if path, err := c.replan(plan); err == nil {
			c.SetPath(path)
		}
	}

	return c.pos, c.yaw, c.pitch, true
}

func (c *Controller) nextWaypoint() (nav.Cell, bool) {
	if c.currentPathIndex >= len(c.path) {
		return nav.Cell{}, false
	}
	return c.path[c.currentPathIndex], true
}

func (c *Controller) nextNextWaypoint() (nav.Cell, bool) {
	idx := c.currentPathIndex + 1
	if idx >= len(c.path) {
		return nav.Cell{}, false
	}
	return c.path[idx], true
}

func (c *Controller) replan(plan PathPlanner) ([]nav.Cell, error) {
	if plan == nil || len(c.path) == 0 {
		return nil, nil
	}
	goal := c.path[len(c.path)-1]
	start := nav.Cell{X: int32(math.Floor(c.pos.X)), Y: int32(math.Floor(c.pos.Y)), Z: int32(math.Floor(c.pos.Z))}
	return plan(start, goal)
}

// applyStrafe offsets the planned step by ±0.3 perpendicular to the
// current yaw (§4.10.3 stage 2).
func (c *Controller) applyStrafe(dx, dz, sign float64) (float64, float64) {
	rad := c.yaw * math.Pi / 180
	perpX := math.Cos(rad) * sign * 0.3
	perpZ := -math.Sin(rad) * sign * 0.3
	return dx + perpX, dz + perpZ
}

// updateYaw implements §4.10.4: compute the target yaw from the planned
// step, clamp the turn rate, and integrate.
func (c *Controller) updateYaw(dx, dz float64) {
	if dx == 0 && dz == 0 {
		return
	}
	targetYaw := -math.Atan2(dx, dz) * 180 / math.Pi
	diff := normalizeAngle(targetYaw - c.yaw)
	if diff > MaxTurnSpeedDeg {
		diff = MaxTurnSpeedDeg
	} else if diff < -MaxTurnSpeedDeg {
		diff = -MaxTurnSpeedDeg
	}
	c.yaw = normalizeAngle(c.yaw + diff)
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

func cellDistance(p Vec3, c nav.Cell) float64 {
	dx := p.X - (float64(c.X) + 0.5)
	dy := p.Y - float64(c.Y)
	dz := p.Z - (float64(c.Z) + 0.5)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (c *Controller) reportArrived() {
	if c.OnArrived != nil {
		c.OnArrived()
	}
}

func (c *Controller) reportError(err error) {
	if err != nil && c.OnError != nil {
		c.OnError(err)
	}
}
