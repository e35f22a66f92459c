package protocol

import (
	"fmt"
	"io"
)

// GlobalPos names a dimension-qualified block position, used for the death
// location advertised at respawn.
type GlobalPos struct {
	DimensionName string
	X, Y, Z       int32
}

type SpawnInfo struct {
	Dimension        int32
	Name             string
	HashedSeed       int64
	Gamemode         int8
	PreviousGamemode uint8
	IsDebug          bool
	IsFlat           bool
	Death            *GlobalPos
	PortalCooldown   int32
	SeaLevel         int32
}

// PlayLogin is the server's entry into play state: entity id, world list,
// and the spawn dimension's metadata.
type PlayLogin struct {
	EntityID            int32
	IsHardcore          bool
	WorldNames          []string
	MaxPlayers          int32
	ViewDistance        int32
	SimulationDistance  int32
	ReducedDebugInfo    bool
	EnableRespawnScreen bool
	DoLimitedCrafting   bool
	WorldState          SpawnInfo
	EnforcesSecureChat  bool
}

type Respawn struct {
	WorldState   SpawnInfo
	CopyMetadata uint8
}

func ParsePlayLogin(r io.Reader) (*PlayLogin, error) {
	entityID, err := ReadInt32(r)
	if err != nil {
		return nil, fmt.Errorf("entity id: %w", err)
	}
	isHardcore, err := ReadBool(r)
	if err != nil {
		return nil, fmt.Errorf("isHardcore: %w", err)
	}

	worldNameCount, err := ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("world names count: %w", err)
	}
	if worldNameCount < 0 {
		return nil, fmt.Errorf("%w: negative world names count %d", ErrInvalidPacket, worldNameCount)
	}
	worldNames := make([]string, worldNameCount)
	for i := range worldNames {
		name, err := ReadString(r)
		if err != nil {
			return nil, fmt.Errorf("world name %d: %w", i, err)
		}
		worldNames[i] = name
	}

	maxPlayers, err := ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("maxPlayers: %w", err)
	}
	viewDistance, err := ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("viewDistance: %w", err)
	}
	simulationDistance, err := ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("simulationDistance: %w", err)
	}

	reducedDebugInfo, err := ReadBool(r)
	if err != nil {
		return nil, fmt.Errorf("reducedDebugInfo: %w", err)
	}
	enableRespawnScreen, err := ReadBool(r)
	if err != nil {
		return nil, fmt.Errorf("enableRespawnScreen: %w", err)
	}
	doLimitedCrafting, err := ReadBool(r)
	if err != nil {
		return nil, fmt.Errorf("doLimitedCrafting: %w", err)
	}

	worldState, err := parseSpawnInfo(r)
	if err != nil {
		return nil, fmt.Errorf("worldState: %w", err)
	}

	enforcesSecureChat, err := ReadBool(r)
	if err != nil {
		return nil, fmt.Errorf("enforcesSecureChat: %w", err)
	}

	return &PlayLogin{
		EntityID:            entityID,
		IsHardcore:          isHardcore,
		WorldNames:          worldNames,
		MaxPlayers:          maxPlayers,
		ViewDistance:        viewDistance,
		SimulationDistance:  simulationDistance,
		ReducedDebugInfo:    reducedDebugInfo,
		EnableRespawnScreen: enableRespawnScreen,
		DoLimitedCrafting:   doLimitedCrafting,
		WorldState:          worldState,
		EnforcesSecureChat:  enforcesSecureChat,
	}, nil
}

func ParseRespawn(r io.Reader) (*Respawn, error) {
	worldState, err := parseSpawnInfo(r)
	if err != nil {
		return nil, fmt.Errorf("worldState: %w", err)
	}
	copyMetadata, err := ReadByte(r)
	if err != nil {
		return nil, fmt.Errorf("copyMetadata: %w", err)
	}
	return &Respawn{WorldState: worldState, CopyMetadata: copyMetadata}, nil
}

func parseSpawnInfo(r io.Reader) (SpawnInfo, error) {
	dimension, err := ReadVarInt(r)
	if err != nil {
		return SpawnInfo{}, fmt.Errorf("dimension: %w", err)
	}
	name, err := ReadString(r)
	if err != nil {
		return SpawnInfo{}, fmt.Errorf("world name: %w", err)
	}
	hashedSeed, err := ReadInt64(r)
	if err != nil {
		return SpawnInfo{}, fmt.Errorf("hashedSeed: %w", err)
	}
	gamemodeByte, err := ReadByte(r)
	if err != nil {
		return SpawnInfo{}, fmt.Errorf("gamemode: %w", err)
	}
	previousGamemode, err := ReadByte(r)
	if err != nil {
		return SpawnInfo{}, fmt.Errorf("previousGamemode: %w", err)
	}
	isDebug, err := ReadBool(r)
	if err != nil {
		return SpawnInfo{}, fmt.Errorf("isDebug: %w", err)
	}
	isFlat, err := ReadBool(r)
	if err != nil {
		return SpawnInfo{}, fmt.Errorf("isFlat: %w", err)
	}
	hasDeath, err := ReadBool(r)
	if err != nil {
		return SpawnInfo{}, fmt.Errorf("death present flag: %w", err)
	}

	var death *GlobalPos
	if hasDeath {
		dimensionName, err := ReadString(r)
		if err != nil {
			return SpawnInfo{}, fmt.Errorf("death dimension name: %w", err)
		}
		packed, err := ReadInt64(r)
		if err != nil {
			return SpawnInfo{}, fmt.Errorf("death position: %w", err)
		}
		x, y, z := unpackBlockPosition(packed)
		death = &GlobalPos{DimensionName: dimensionName, X: x, Y: y, Z: z}
	}

	portalCooldown, err := ReadVarInt(r)
	if err != nil {
		return SpawnInfo{}, fmt.Errorf("portalCooldown: %w", err)
	}
	seaLevel, err := ReadVarInt(r)
	if err != nil {
		return SpawnInfo{}, fmt.Errorf("seaLevel: %w", err)
	}

	return SpawnInfo{
		Dimension:        dimension,
		Name:             name,
		HashedSeed:       hashedSeed,
		Gamemode:         int8(gamemodeByte),
		PreviousGamemode: previousGamemode,
		IsDebug:          isDebug,
		IsFlat:           isFlat,
		Death:            death,
		PortalCooldown:   portalCooldown,
		SeaLevel:         seaLevel,
	}, nil
}

// unpackBlockPosition decodes the standard 26/26/12-bit signed packing used
// for block-position longs on the wire: x in bits 38-63, z in bits 12-37,
// y in bits 0-11.
func unpackBlockPosition(packed int64) (x, y, z int32) {
	x = int32(packed >> 38)
	y = int32(packed << 52 >> 52)
	z = int32(packed << 26 >> 38)
	return x, y, z
}
