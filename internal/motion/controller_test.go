package motion

import (
	"testing"

	"github.com/ardenlabs/voxelbot/internal/nav"
)

func TestControllerWalksPathAndArrives(t *testing.T) {
	w := newMockSolidWorld()
	w.addFloor(-2, 10, -2, 2, -1)

	c := NewController(w, Vec3{X: 0.5, Y: 0, Z: 0.5}, false)
	c.SetPath([]nav.Cell{{X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0}})

	arrived := false
	c.OnArrived = func() { arrived = true }

	for i := 0; i < 60 && !arrived; i++ {
		c.Tick(nil)
	}

	if !arrived {
		t.Fatalf("controller never reported arrival: final pos=%v", c.Position())
	}
}

func TestControllerAdvancesWaypointIndexWithinRadius(t *testing.T) {
	w := newMockSolidWorld()
	w.addFloor(-2, 10, -2, 2, -1)

	c := NewController(w, Vec3{X: 0.5, Y: 0, Z: 0.5}, false)
	c.SetPath([]nav.Cell{{X: 0, Y: 0, Z: 0}, {X: 20, Y: 0, Z: 0}})

	if c.currentPathIndex != 0 {
		t.Fatalf("currentPathIndex = %d, want 0 at start", c.currentPathIndex)
	}
	c.Tick(nil)
	if c.currentPathIndex != 1 {
		t.Fatalf("currentPathIndex = %d, want 1 once within WaypointRadiusXZ of the first waypoint", c.currentPathIndex)
	}
}

func TestControllerStopClearsTarget(t *testing.T) {
	w := newMockSolidWorld()
	c := NewController(w, Vec3{}, false)
	c.SetPath([]nav.Cell{{X: 5, Y: 0, Z: 0}})
	c.Stop()

	_, _, _, ok := c.Tick(nil)
	if ok {
		t.Fatalf("Tick reported ok=true after Stop, want false")
	}
}

func TestServerPositionResetDelaysMovement(t *testing.T) {
	w := newMockSolidWorld()
	w.addFloor(-2, 10, -2, 2, -1)

	c := NewController(w, Vec3{X: 0.5, Y: 0, Z: 0.5}, false)
	c.SetPath([]nav.Cell{{X: 5, Y: 0, Z: 0}})
	c.ServerPositionReset(Vec3{X: 3, Y: 0, Z: 3})

	for i := 0; i < TeleportCooldown; i++ {
		if _, _, _, ok := c.Tick(nil); ok {
			t.Fatalf("Tick reported ok=true during movement cooldown at step %d", i)
		}
	}

	// The snap to the anchor happens on the first tick after cooldown
	// expiry, not the tick the cooldown reaches zero on.
	c.Tick(nil)
	pos := c.Position()
	stepLen := HorizontalSpeed * TickRate.Seconds()
	approxEqual(t, pos.X, 3, stepLen+1e-9, "position.x")
	approxEqual(t, pos.Z, 3, stepLen+1e-9, "position.z")
}

func TestStuckCounterClimbsWhilePinnedAgainstWall(t *testing.T) {
	w := newMockSolidWorld()
	w.addFloor(-2, 10, -2, 2, -1)
	// A wall directly ahead with no way around pins the avatar in place,
	// so NoteMovement counts stuck ticks.
	for y := int32(0); y <= 2; y++ {
		for z := int32(-2); z <= 2; z++ {
			w.setSolid(1, y, z)
		}
	}

	c := NewController(w, Vec3{X: 0.5, Y: 0, Z: 0.5}, false)
	c.SetPath([]nav.Cell{{X: 10, Y: 0, Z: 0}})

	for i := 0; i < 20; i++ {
		c.Tick(nil)
	}

	if c.recovery.StuckCounter == 0 {
		t.Fatalf("expected the stuck counter to have climbed while pinned against the wall")
	}
}
