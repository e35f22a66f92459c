package world

import (
	"fmt"
	"strings"
	"sync"
)

// WorldState holds the client-visible, non-block facts the play state
// hands out: position, vitals, game time, and the player list. Block data
// lives in Cache, remote entities in Tracker — kept separate so a snapshot
// never needs to copy either's larger maps.
type WorldState struct {
	position         Position
	health           float32
	food             int32
	gameTime         GameTime
	dimensionName    string
	simulationDist   int32
	viewCenterChunkX int32
	viewCenterChunkZ int32
	playerList       []Player
	mu               sync.RWMutex
}

type Position struct {
	X     float64
	Y     float64
	Z     float64
	Yaw   float32
	Pitch float32
}

type GameTime struct {
	WorldTime int64
	Age       int64
}

type Player struct {
	Name string
	UUID string
}

type Snapshot struct {
	Position           Position
	Health             float32
	Food               int32
	GameTime           GameTime
	DimensionName      string
	SimulationDistance int32
	ViewCenterChunkX   int32
	ViewCenterChunkZ   int32
	PlayerList         []Player
	EntityCount        int
}

func (s Snapshot) String() string {
	var playerInfos []string
	for _, p := range s.PlayerList {
		playerInfos = append(playerInfos, fmt.Sprintf("%s (%s)", p.Name, p.UUID))
	}

	timeOfDay := s.GameTime.WorldTime % 24000
	hours := (timeOfDay/1000 + 6) % 24
	minutes := (timeOfDay % 1000) * 60 / 1000

	return fmt.Sprintf(
		"Snapshot [Time: %02d:%02d] | [Position: (X: %.2f, Y: %.2f, Z: %.2f, Yaw: %.2f, Pitch: %.2f)] | [Health: %.2f] | [Food: %d] | [Players: [%s]] | [Entities: %d]",
		hours, minutes,
		s.Position.X, s.Position.Y, s.Position.Z, s.Position.Yaw, s.Position.Pitch,
		s.Health,
		s.Food,
		strings.Join(playerInfos, ", "),
		s.EntityCount,
	)
}

func NewWorldState() *WorldState {
	return &WorldState{}
}

func (ws *WorldState) GetState(entityCount int) Snapshot {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return Snapshot{
		Position:           ws.position,
		Health:             ws.health,
		Food:               ws.food,
		GameTime:           ws.gameTime,
		DimensionName:      ws.dimensionName,
		SimulationDistance: ws.simulationDist,
		ViewCenterChunkX:   ws.viewCenterChunkX,
		ViewCenterChunkZ:   ws.viewCenterChunkZ,
		PlayerList:         append([]Player(nil), ws.playerList...),
		EntityCount:        entityCount,
	}
}

func (ws *WorldState) UpdatePosition(pos Position) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.position = pos
}

func (ws *WorldState) Position() Position {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.position
}

func (ws *WorldState) UpdateHealth(health float32, food int32) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.health = health
	ws.food = food
}

func (ws *WorldState) UpdateGameTime(gameTime GameTime) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.gameTime = gameTime
}

func (ws *WorldState) UpdateDimensionContext(dimensionName string, simulationDistance int32) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.dimensionName = dimensionName
	ws.simulationDist = simulationDistance
}

func (ws *WorldState) UpdateViewCenter(chunkX, chunkZ int32) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.viewCenterChunkX = chunkX
	ws.viewCenterChunkZ = chunkZ
}

func (ws *WorldState) ViewCenter() (chunkX, chunkZ int32) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.viewCenterChunkX, ws.viewCenterChunkZ
}

func (ws *WorldState) AddPlayers(players []Player) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if len(players) == 0 {
		return
	}

	existing := make(map[string]int, len(ws.playerList))
	for i, player := range ws.playerList {
		existing[player.UUID] = i
	}

	for _, player := range players {
		if idx, ok := existing[player.UUID]; ok {
			ws.playerList[idx] = player
			continue
		}
		ws.playerList = append(ws.playerList, player)
		existing[player.UUID] = len(ws.playerList) - 1
	}
}

func (ws *WorldState) RemovePlayer(uuid string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if len(ws.playerList) == 0 {
		return
	}

	filtered := ws.playerList[:0]
	for _, player := range ws.playerList {
		if player.UUID != uuid {
			filtered = append(filtered, player)
		}
	}
	ws.playerList = filtered
}
