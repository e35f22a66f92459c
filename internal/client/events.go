package client

import "github.com/ardenlabs/voxelbot/internal/event"

// OnLogin registers fn to run whenever the login sequence completes.
func (c *Client) OnLogin(fn func(*event.LoginEvent)) {
	c.bus.Subscribe(event.EventLogin, func(e any) {
		if ev, ok := e.(*event.LoginEvent); ok {
			fn(ev)
		}
	})
}

// OnSpawn registers fn to run when the client enters play state.
func (c *Client) OnSpawn(fn func(*event.SpawnEvent)) {
	c.bus.Subscribe(event.EventSpawn, func(e any) {
		if ev, ok := e.(*event.SpawnEvent); ok {
			fn(ev)
		}
	})
}

// OnPosition registers fn to run on every movement tick that sends an
// updated position to the server.
func (c *Client) OnPosition(fn func(*event.PositionEvent)) {
	c.bus.Subscribe(event.EventPosition, func(e any) {
		if ev, ok := e.(*event.PositionEvent); ok {
			fn(ev)
		}
	})
}

// OnHealth registers fn to run on every health/food update.
func (c *Client) OnHealth(fn func(*event.HealthEvent)) {
	c.bus.Subscribe(event.EventHealth, func(e any) {
		if ev, ok := e.(*event.HealthEvent); ok {
			fn(ev)
		}
	})
}

// OnChat registers fn to run on every chat message, player or system.
func (c *Client) OnChat(fn func(*event.ChatEvent)) {
	c.bus.Subscribe(event.EventChat, func(e any) {
		if ev, ok := e.(*event.ChatEvent); ok {
			fn(ev)
		}
	})
}

// OnDisconnect registers fn to run when the server closes the connection.
func (c *Client) OnDisconnect(fn func(*event.DisconnectEvent)) {
	c.bus.Subscribe(event.EventDisconnect, func(e any) {
		if ev, ok := e.(*event.DisconnectEvent); ok {
			fn(ev)
		}
	})
}

// OnError registers fn to run on pathfinding and motion-controller errors
// that don't terminate the connection.
func (c *Client) OnError(fn func(*event.ErrorEvent)) {
	c.bus.Subscribe(event.EventError, func(e any) {
		if ev, ok := e.(*event.ErrorEvent); ok {
			fn(ev)
		}
	})
}

// OnArrived registers fn to run when the motion controller reaches the end
// of the current path.
func (c *Client) OnArrived(fn func(*event.ArrivedEvent)) {
	c.bus.Subscribe(event.EventArrived, func(e any) {
		if ev, ok := e.(*event.ArrivedEvent); ok {
			fn(ev)
		}
	})
}

// OnEntityAppear registers fn to run whenever a new entity enters tracked
// range.
func (c *Client) OnEntityAppear(fn func(*event.EntityEvent)) {
	c.bus.Subscribe(event.EventEntityAppear, func(e any) {
		if ev, ok := e.(*event.EntityEvent); ok {
			fn(ev)
		}
	})
}

// OnEntityLeave registers fn to run whenever a tracked entity is removed.
func (c *Client) OnEntityLeave(fn func(*event.EntityEvent)) {
	c.bus.Subscribe(event.EventEntityLeave, func(e any) {
		if ev, ok := e.(*event.EntityEvent); ok {
			fn(ev)
		}
	})
}
