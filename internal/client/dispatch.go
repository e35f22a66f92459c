package client

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/ardenlabs/voxelbot/internal/event"
	"github.com/ardenlabs/voxelbot/internal/motion"
	"github.com/ardenlabs/voxelbot/internal/protocol"
	"github.com/ardenlabs/voxelbot/internal/world"
)

// dispatchContext carries only the child components a handler might need,
// never a back-pointer to Client: handlers cannot reach into connection
// plumbing or re-enter the apply loop.
type dispatchContext struct {
	writePacket func(*protocol.Packet) error
	connState   *protocol.ConnState
	cache       *world.Cache
	tracker     *world.Tracker
	world       *world.WorldState
	motion      *motion.Controller
	bus         *event.Bus
	log         *slog.Logger

	selfUUID     *protocol.UUID
	selfUsername *string
	selfEntityID *int32

	// batchStart marks when the current chunk batch began, so the
	// received-ack can report an achieved chunks-per-tick rate.
	batchStart *time.Time
}

type packetHandler func(dc *dispatchContext, payload []byte) error

// dispatchTable is built once at package init: map[state][packetID]handler.
// No closures capture per-packet state and no handler holds a pointer back
// to Client.
var dispatchTable = map[protocol.State]map[int32]packetHandler{
	protocol.StateLogin:         loginHandlers(),
	protocol.StateConfiguration: configurationHandlers(),
	protocol.StatePlay:          playHandlers(),
}

func loginHandlers() map[int32]packetHandler {
	return map[int32]packetHandler{
		protocol.S2CSetCompression: handleSetCompression,
		protocol.S2CLoginSuccess:   handleLoginSuccess,
	}
}

func configurationHandlers() map[int32]packetHandler {
	return map[int32]packetHandler{
		protocol.S2CFinishConfiguration: handleFinishConfiguration,
	}
}

func playHandlers() map[int32]packetHandler {
	return map[int32]packetHandler{
		protocol.S2CKeepAlive:                 handleKeepAlive,
		protocol.S2CPing:                      handlePing,
		protocol.S2CSynchronizePlayerPosition: handleSynchronizePlayerPosition,
		protocol.S2CChunkData:                 handleChunkData,
		protocol.S2CSpawnEntity:               handleSpawnEntity,
		protocol.S2CRemoveEntities:            handleRemoveEntities,
		protocol.S2CUpdateEntityPosition:      handleUpdateEntityPosition,
		protocol.S2CUpdateEntityPositionRot:   handleUpdateEntityPositionRot,
		protocol.S2CTeleportEntity:            handleTeleportEntity,
		protocol.S2CPlayerChatMessage:         handlePlayerChatMessage,
		protocol.S2CSystemChatMessage:         handleSystemChatMessage,
		protocol.S2CSetHealth:                 handleSetHealth,
		protocol.S2CUpdateTime:                handleUpdateTime,
		protocol.S2CPlayerInfoUpdate:           handlePlayerInfoUpdate,
		protocol.S2CPlayerInfoRemove:           handlePlayerInfoRemove,
		protocol.S2CDisconnectPlay:             handleDisconnect,
		protocol.S2CStartConfiguration:         handleStartConfigurationDuringPlay,
		protocol.S2CLogin:                      handlePlayLogin,
		protocol.S2CSetCenterChunk:             handleSetCenterChunk,
		protocol.S2CForgetLevelChunk:           handleForgetLevelChunk,
		protocol.S2CChunkBatchStart:            handleChunkBatchStart,
		protocol.S2CChunkBatchFinished:         handleChunkBatchFinished,
	}
}

func handlePlayLogin(dc *dispatchContext, payload []byte) error {
	pl, err := protocol.ParsePlayLogin(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	*dc.selfEntityID = pl.EntityID
	dc.log.Info("joined world", "entity_id", pl.EntityID, "dimension", pl.WorldState.Name)
	dc.bus.Publish(event.EventSpawn, &event.SpawnEvent{})
	return nil
}

func handleSetCompression(dc *dispatchContext, payload []byte) error {
	threshold, err := protocol.ReadVarInt(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.connState.SetThreshold(int(threshold))
	dc.log.Info("compression enabled", "threshold", threshold)
	return nil
}

func handleLoginSuccess(dc *dispatchContext, payload []byte) error {
	ls, err := protocol.ParseLoginSuccess(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	*dc.selfUUID = ls.UUID
	*dc.selfUsername = ls.Username

	if err := dc.writePacket(protocol.WriteLoginAcknowledged()); err != nil {
		return err
	}
	dc.connState.Set(protocol.StateConfiguration)
	dc.log.Info("login successful", "username", ls.Username, "uuid", ls.UUID.String())
	dc.bus.Publish(event.EventLogin, &event.LoginEvent{Username: ls.Username, UUID: ls.UUID.String()})
	return nil
}

func handleFinishConfiguration(dc *dispatchContext, _ []byte) error {
	if err := dc.writePacket(protocol.CreateAcknowledgeFinishConfigurationPacket()); err != nil {
		return err
	}
	dc.connState.Set(protocol.StatePlay)
	dc.log.Info("entering play state")
	return nil
}

func handleStartConfigurationDuringPlay(dc *dispatchContext, _ []byte) error {
	if err := dc.writePacket(protocol.CreateAcknowledgeFinishConfigurationPacket()); err != nil {
		return err
	}
	dc.connState.Set(protocol.StateConfiguration)
	dc.log.Info("server requested configuration reversion")
	return nil
}

func handleKeepAlive(dc *dispatchContext, payload []byte) error {
	ka, err := protocol.ParseKeepAlive(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	return dc.writePacket(protocol.CreateKeepAlivePacket(ka.KeepAliveID, protocol.C2SKeepAliveResponse))
}

func handlePing(dc *dispatchContext, payload []byte) error {
	id, err := protocol.ReadInt32(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	pong, err := protocol.CreatePongPacket(int64(id))
	if err != nil {
		return err
	}
	return dc.writePacket(pong)
}

func handleSynchronizePlayerPosition(dc *dispatchContext, payload []byte) error {
	pp, err := protocol.ParsePlayerPosition(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	confirm, err := protocol.CreateTeleportConfirmPacket(pp.TeleportID)
	if err != nil {
		return err
	}
	if err := dc.writePacket(confirm); err != nil {
		return err
	}
	if dc.motion != nil {
		dc.motion.ServerPositionReset(motion.Vec3{X: pp.X, Y: pp.Y, Z: pp.Z})
	}
	dc.world.UpdatePosition(world.Position{X: pp.X, Y: pp.Y, Z: pp.Z, Yaw: pp.Yaw, Pitch: pp.Pitch})
	return nil
}

func handleChunkData(dc *dispatchContext, payload []byte) error {
	r := bytes.NewReader(payload)
	cx, err := protocol.ReadInt32(r)
	if err != nil {
		return err
	}
	cz, err := protocol.ReadInt32(r)
	if err != nil {
		return err
	}
	if err := dc.cache.StoreChunk(cx, cz, payload); err != nil {
		dc.log.Warn("chunk decode failed", "chunk_x", cx, "chunk_z", cz, "error", err)
		return nil
	}
	return nil
}

func handleSpawnEntity(dc *dispatchContext, payload []byte) error {
	se, err := protocol.ParseSpawnEntity(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.tracker.Add(world.Entity{EntityID: se.EntityID, UUID: se.ObjectUUID, Type: se.Type, X: se.X, Y: se.Y, Z: se.Z})
	dc.bus.Publish(event.EventEntityAppear, &event.EntityEvent{EntityID: se.EntityID, Type: se.Type})
	return nil
}

func handleRemoveEntities(dc *dispatchContext, payload []byte) error {
	rm, err := protocol.ParseEntityDestroy(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.tracker.Remove(rm.EntityIDs)
	for _, id := range rm.EntityIDs {
		dc.bus.Publish(event.EventEntityLeave, &event.EntityEvent{EntityID: id})
	}
	return nil
}

func handleUpdateEntityPosition(dc *dispatchContext, payload []byte) error {
	mv, err := protocol.ParseRelEntityMove(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.tracker.UpdateRelative(mv.EntityID, mv.DeltaX(), mv.DeltaY(), mv.DeltaZ(), 0)
	return nil
}

func handleUpdateEntityPositionRot(dc *dispatchContext, payload []byte) error {
	mv, err := protocol.ParseEntityMoveLook(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.tracker.UpdateRelative(mv.EntityID, mv.DeltaX(), mv.DeltaY(), mv.DeltaZ(), 0)
	return nil
}

func handleTeleportEntity(dc *dispatchContext, payload []byte) error {
	tp, err := protocol.ParseEntityTeleport(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.tracker.UpdateAbsolute(tp.EntityID, tp.X, tp.Y, tp.Z, 0)
	return nil
}

func handlePlayerChatMessage(dc *dispatchContext, payload []byte) error {
	chat, err := protocol.ParsePlayerChat(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if chat.SenderUUID == *dc.selfUUID {
		return nil
	}
	name := ""
	if chat.NetworkName != nil {
		name = chat.NetworkName.AsString()
	}
	dc.bus.Publish(event.EventChat, event.NewChatEvent(name, chat.SenderUUID, chat.PlainMessage, event.SourcePlayer))
	return nil
}

func handleSystemChatMessage(dc *dispatchContext, payload []byte) error {
	sc, err := protocol.ParseSystemChat(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.bus.Publish(event.EventChat, event.NewChatEvent("", protocol.UUID{}, sc.Content.AsString(), event.SourceSystem))
	return nil
}

func handleSetHealth(dc *dispatchContext, payload []byte) error {
	uh, err := protocol.ParseUpdateHealth(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.world.UpdateHealth(uh.Health, uh.Food)
	dc.bus.Publish(event.EventHealth, &event.HealthEvent{Health: uh.Health, Food: uh.Food})
	if uh.Health <= 0 {
		respawn, err := protocol.CreateRespawnRequestPacket()
		if err != nil {
			return err
		}
		return dc.writePacket(respawn)
	}
	return nil
}

func handleUpdateTime(dc *dispatchContext, payload []byte) error {
	ut, err := protocol.ParseUpdateTime(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.world.UpdateGameTime(world.GameTime{WorldTime: ut.WorldTime, Age: ut.Age})
	return nil
}

func handlePlayerInfoUpdate(dc *dispatchContext, payload []byte) error {
	pi, err := protocol.ParsePlayerInfo(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	players := make([]world.Player, 0, len(pi.Players))
	for _, p := range pi.Players {
		if p.Name == "" {
			continue
		}
		players = append(players, world.Player{Name: p.Name, UUID: p.UUID.String()})
	}
	dc.world.AddPlayers(players)
	return nil
}

func handlePlayerInfoRemove(dc *dispatchContext, payload []byte) error {
	pr, err := protocol.ParsePlayerRemove(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	for _, uuid := range pr.Players {
		dc.world.RemovePlayer(uuid.String())
	}
	return nil
}

func handleSetCenterChunk(dc *dispatchContext, payload []byte) error {
	vp, err := protocol.ParseUpdateViewPosition(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.world.UpdateViewCenter(vp.ChunkX, vp.ChunkZ)
	keepRange := dc.world.GetState(0).SimulationDistance
	if keepRange <= 0 {
		keepRange = 10
	}
	dc.cache.ClearDistantChunks(vp.ChunkX, vp.ChunkZ, keepRange)
	return nil
}

func handleForgetLevelChunk(dc *dispatchContext, payload []byte) error {
	uc, err := protocol.ParseUnloadChunk(payload)
	if err != nil {
		return err
	}
	dc.cache.UnloadChunk(uc.ChunkX, uc.ChunkZ)
	return nil
}

func handleChunkBatchStart(dc *dispatchContext, _ []byte) error {
	now := time.Now()
	*dc.batchStart = now
	return nil
}

// handleChunkBatchFinished acks the batch with the chunk throughput we
// actually sustained, clamped to a sane range; the server uses this to
// size the next batch.
func handleChunkBatchFinished(dc *dispatchContext, payload []byte) error {
	cb, err := protocol.ParseChunkBatchFinished(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	elapsed := time.Since(*dc.batchStart)
	ticks := elapsed.Seconds() / 0.05
	chunksPerTick := float32(21.0)
	if ticks > 0 && cb.BatchSize > 0 {
		chunksPerTick = float32(float64(cb.BatchSize) / ticks)
	}
	if chunksPerTick < 0.01 {
		chunksPerTick = 0.01
	}
	if chunksPerTick > 64 {
		chunksPerTick = 64
	}
	ack, err := protocol.CreateChunkBatchReceivedPacket(chunksPerTick)
	if err != nil {
		return err
	}
	return dc.writePacket(ack)
}

func handleDisconnect(dc *dispatchContext, payload []byte) error {
	reason, err := protocol.ReadAnonymousNBT(bytes.NewReader(payload))
	if err != nil {
		return err
	}
	dc.bus.Publish(event.EventDisconnect, &event.DisconnectEvent{Reason: reason.AsString()})
	return nil
}
