package client

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/ardenlabs/voxelbot/internal/event"
	"github.com/ardenlabs/voxelbot/internal/motion"
	"github.com/ardenlabs/voxelbot/internal/nav"
	"github.com/ardenlabs/voxelbot/internal/protocol"
	"github.com/ardenlabs/voxelbot/internal/world"
)

// cmd is one unit of serialized work: a decoded packet to dispatch, a
// motion tick, or an operator request (goto/stop/chat). Both the reader
// goroutine and the tick goroutine only ever produce cmds; a single apply
// loop consumes them one at a time, so the world cache, tracker, and
// motion controller never see concurrent writers.
type cmd func() error

// Client is the facade (C11): it owns the connection, world cache, entity
// tracker, and motion controller, and is the only writer to any of them.
type Client struct {
	serverAddr      string
	protocolVersion int32
	username        string
	selfUUID        protocol.UUID
	selfEntityID    int32

	conn      net.Conn
	connState *protocol.ConnState
	writeMu   sync.Mutex

	cache      *world.Cache
	tracker    *world.Tracker
	worldState *world.WorldState
	motionCtl  *motion.Controller

	bus    *event.Bus
	log    *slog.Logger
	planFn motion.PathPlanner

	pathfindingMode bool
	batchStart      time.Time

	cmdCh chan cmd

	mu           sync.RWMutex
	lastActivity time.Time
	hasTarget    bool
}

// Config is the subset of configuration a single Client needs, already
// resolved from the supervisor's per-client/server-endpoint structs.
type Config struct {
	Host            string
	Port            int
	ProtocolVersion int32
	Username        string
	PathfindingMode bool
}

func New(cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		serverAddr:      net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		protocolVersion: cfg.ProtocolVersion,
		username:        cfg.Username,
		selfUUID:        protocol.OfflineUUID(cfg.Username),
		connState:       protocol.NewConnState(),
		cache:           world.NewCache(),
		tracker:         world.NewTracker(),
		worldState:      world.NewWorldState(),
		bus:             event.NewBus(),
		log:             log,
		pathfindingMode: cfg.PathfindingMode,
		cmdCh:           make(chan cmd, 64),
	}
	c.planFn = func(start, goal nav.Cell) ([]nav.Cell, error) {
		return nav.Plan(c.cache, start, goal, nav.Options{PathfindingMode: c.pathfindingMode})
	}
	return c
}

func (c *Client) Bus() *event.Bus { return c.bus }

// LastActivity reports when a packet was last successfully read, the
// signal a supervisor uses to decide a connection has gone silent.
func (c *Client) LastActivity() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastActivity
}

func (c *Client) touchActivity() {
	c.mu.Lock()
	c.lastActivity = time.Now()
	c.mu.Unlock()
}

// Close forces the underlying connection closed, unblocking the reader
// goroutine's in-flight read so Connect returns. A supervisor calls this
// when LastActivity goes stale past the keep-alive timeout; the client
// itself never times out its own connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Connect dials the server, runs the handshake/login/configuration
// sequence synchronously, then runs the play-state apply loop until ctx
// is cancelled or a fatal transport/protocol error occurs.
func (c *Client) Connect(ctx context.Context) error {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", c.serverAddr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.serverAddr, err)
	}
	c.conn = conn
	defer conn.Close()
	c.log.Info("connected", "address", c.serverAddr)

	if err := c.login(); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := c.configure(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	c.motionCtl = motion.NewController(c.cache, motion.Vec3{}, c.pathfindingMode)
	c.motionCtl.OnArrived = func() {
		pos := c.motionCtl.Position()
		c.bus.Publish(event.EventArrived, &event.ArrivedEvent{X: pos.X, Y: pos.Y, Z: pos.Z})
	}
	c.motionCtl.OnError = func(err error) { c.bus.Publish(event.EventError, &event.ErrorEvent{Err: err}) }

	readerCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.readerLoop(readerCtx)
	go c.tickerLoop(readerCtx)

	return c.applyLoop(ctx)
}

func (c *Client) login() error {
	host, portStr, err := net.SplitHostPort(c.serverAddr)
	if err != nil {
		return err
	}
	port, _ := strconv.ParseUint(portStr, 10, 16)

	handshake, err := protocol.WriteHandshake(&protocol.Handshake{
		ProtocolVersion: c.protocolVersion,
		ServerAddress:   host,
		ServerPort:      uint16(port),
		NextState:       int32(protocol.StateLogin),
	})
	if err != nil {
		return err
	}
	if err := c.writePacket(handshake); err != nil {
		return err
	}
	c.connState.Set(protocol.StateLogin)

	loginStart, err := protocol.WriteLoginStart(c.username)
	if err != nil {
		return err
	}
	if err := c.writePacket(loginStart); err != nil {
		return err
	}

	dc := c.dispatchContext()
	for c.connState.Get() == protocol.StateLogin {
		if err := c.readAndDispatch(dc); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) configure() error {
	clientInfo, err := protocol.CreateClientInformationPacket(protocol.ClientInformation{
		Locale:              "en_us",
		ViewDistance:        10,
		ChatFlags:           0,
		ChatColors:          true,
		SkinParts:           127,
		MainHand:            1,
		EnableTextFiltering: false,
		EnableServerListing: true,
	})
	if err != nil {
		return err
	}
	if err := c.writePacket(clientInfo); err != nil {
		return err
	}

	knownPacks, err := protocol.CreateKnownPacksPacket(nil)
	if err != nil {
		return err
	}
	if err := c.writePacket(knownPacks); err != nil {
		return err
	}

	dc := c.dispatchContext()
	for c.connState.Get() == protocol.StateConfiguration {
		if err := c.readAndDispatch(dc); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) readAndDispatch(dc *dispatchContext) error {
	packet, err := protocol.ReadPacket(c.conn, c.connState.Threshold())
	if err != nil {
		return err
	}
	c.touchActivity()
	return c.dispatch(dc, c.connState.Get(), packet)
}

func (c *Client) dispatch(dc *dispatchContext, state protocol.State, packet *protocol.Packet) error {
	handlers, ok := dispatchTable[state]
	if !ok {
		return nil
	}
	h, ok := handlers[packet.ID]
	if !ok {
		c.log.Debug("unhandled packet", "state", state, "id", packet.ID)
		return nil
	}
	return h(dc, packet.Payload)
}

func (c *Client) dispatchContext() *dispatchContext {
	return &dispatchContext{
		writePacket:  c.writePacket,
		connState:    c.connState,
		cache:        c.cache,
		tracker:      c.tracker,
		world:        c.worldState,
		motion:       c.motionCtl,
		bus:          c.bus,
		log:          c.log,
		selfUUID:     &c.selfUUID,
		selfUsername: &c.username,
		selfEntityID: &c.selfEntityID,
		batchStart:   &c.batchStart,
	}
}

func (c *Client) writePacket(p *protocol.Packet) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return protocol.WritePacket(c.conn, p, c.connState.Threshold())
}

// readerLoop only decodes frames and hands dispatch off to the apply loop;
// it never touches world/tracker/motion state directly.
func (c *Client) readerLoop(ctx context.Context) {
	dc := c.dispatchContext()
	for {
		packet, err := protocol.ReadPacket(c.conn, c.connState.Threshold())
		if err != nil {
			select {
			case c.cmdCh <- func() error { return fmt.Errorf("read packet: %w", err) }:
			case <-ctx.Done():
			}
			return
		}
		p := packet
		select {
		case c.cmdCh <- func() error {
			c.touchActivity()
			if err := c.dispatch(dc, c.connState.Get(), p); err != nil {
				c.log.Warn("packet handler failed", "id", p.ID, "error", err)
			}
			return nil
		}:
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) tickerLoop(ctx context.Context) {
	ticker := time.NewTicker(motion.TickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case c.cmdCh <- func() error { c.tick(); return nil }:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (c *Client) applyLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-c.cmdCh:
			if err := fn(); err != nil {
				return err
			}
		}
	}
}

func (c *Client) tick() {
	if c.motionCtl == nil {
		return
	}
	pos, yaw, pitch, moved := c.motionCtl.Tick(c.planFn)
	if !moved {
		return
	}
	packet := protocol.CreatePlayerPositionAndRotationPacket(pos.X, pos.Y, pos.Z, float32(yaw), float32(pitch), c.motionCtl.OnGround())
	if err := c.writePacket(packet); err != nil {
		c.log.Warn("send movement packet", "error", err)
		return
	}
	c.worldState.UpdatePosition(world.Position{X: pos.X, Y: pos.Y, Z: pos.Z, Yaw: float32(yaw), Pitch: float32(pitch)})
	c.bus.Publish(event.EventPosition, &event.PositionEvent{X: pos.X, Y: pos.Y, Z: pos.Z, Yaw: float32(yaw), Pitch: float32(pitch)})
}

// Goto enqueues a pathfinding goal; when the apply loop runs it, a path to
// (x, y, z) is planned from the current position and handed to the motion
// controller, which follows it from the next tick. A planning failure is
// published as an error event.
func (c *Client) Goto(x, y, z float64) {
	c.enqueue(func() error {
		if c.motionCtl == nil {
			return nil
		}
		pos := c.motionCtl.Position()
		start := nav.Cell{X: int32(math.Floor(pos.X)), Y: int32(math.Floor(pos.Y)), Z: int32(math.Floor(pos.Z))}
		goal := nav.Cell{X: int32(math.Floor(x)), Y: int32(math.Floor(y)), Z: int32(math.Floor(z))}
		path, err := c.planFn(start, goal)
		if err != nil {
			c.bus.Publish(event.EventError, &event.ErrorEvent{Err: err})
			return nil
		}
		c.motionCtl.SetPath(path)
		c.mu.Lock()
		c.hasTarget = true
		c.mu.Unlock()
		return nil
	})
}

// Stop clears the current pathfinding target.
func (c *Client) Stop() {
	c.enqueue(func() error {
		if c.motionCtl != nil {
			c.motionCtl.Stop()
		}
		c.mu.Lock()
		c.hasTarget = false
		c.mu.Unlock()
		return nil
	})
}

// HasTarget reports whether a goto goal is currently active.
func (c *Client) HasTarget() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hasTarget
}

// Position returns the motion controller's last known position, or the
// zero value before a connection has been established.
func (c *Client) Position() motion.Vec3 {
	if c.motionCtl == nil {
		return motion.Vec3{}
	}
	return c.motionCtl.Position()
}

// SendChat enqueues an unsigned chat message for the next apply-loop turn.
func (c *Client) SendChat(msg string) {
	c.enqueue(func() error {
		now := time.Now().UnixMilli()
		packet, err := protocol.CreateChatMessagePacket(msg, now, 0)
		if err != nil {
			return nil
		}
		if err := c.writePacket(packet); err != nil {
			c.log.Warn("send chat", "error", err)
		}
		return nil
	})
}

func (c *Client) enqueue(fn cmd) {
	c.cmdCh <- fn
}
