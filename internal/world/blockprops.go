package world

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const (
	ChunkMinY         = -64
	ChunkMaxY         = 319
	ChunkSectionCount = 24
)

// blockDefinition mirrors the shape of a PrismarineJS-style blocks.json
// entry: a contiguous [MinStateID, MaxStateID] run sharing one bounding box
// and display name.
type blockDefinition struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	MinStateID  int32  `json:"minStateId"`
	MaxStateID  int32  `json:"maxStateId"`
	BoundingBox string `json:"boundingBox"`
	Material    string `json:"material"`
}

var props struct {
	mu     sync.RWMutex
	solid  []bool
	fluid  []bool
	lava   []bool
	climb  []bool
	names  []string
	loaded bool
}

// The defaultWater*/defaultLava* ranges cover the vanilla 1.21 global
// palette's fluid source/flowing-level state ids and defaultLadderState/
// defaultVine* its climbable ones, used as a fallback when no blocks.json
// table has been loaded.
const (
	defaultWaterMinState = 34
	defaultWaterMaxState = 65
	defaultLavaMinState  = 66
	defaultLavaMaxState  = 97
	defaultLadderState   = 223
	defaultVineMinState  = 9140
	defaultVineMaxState  = 9155
)

// LoadBlockProperties loads a blocks.json table (MinStateID/MaxStateID
// runs, as shipped by common Minecraft data-extraction tools) to drive
// solidity/fluid/climbable lookups. Safe to call once at startup; if it is
// never called, the built-in fallback ranges above are used.
func LoadBlockProperties(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read block properties: %w", err)
	}
	var defs []blockDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("parse block properties: %w", err)
	}
	if len(defs) == 0 {
		return fmt.Errorf("block properties table is empty")
	}

	maxState := int32(-1)
	for _, d := range defs {
		if d.MaxStateID > maxState {
			maxState = d.MaxStateID
		}
	}
	solid := make([]bool, maxState+1)
	fluid := make([]bool, maxState+1)
	lava := make([]bool, maxState+1)
	climb := make([]bool, maxState+1)
	names := make([]string, maxState+1)
	for _, d := range defs {
		isSolid := d.BoundingBox == "block"
		isLava := d.Name == "lava"
		isFluid := d.Material == "liquid" || d.Name == "water" || isLava
		isClimb := d.Name == "ladder" || d.Name == "vine" || d.Name == "scaffolding"
		name := d.DisplayName
		if name == "" {
			name = d.Name
		}
		for id := d.MinStateID; id <= d.MaxStateID; id++ {
			solid[id] = isSolid
			fluid[id] = isFluid
			lava[id] = isLava
			climb[id] = isClimb
			if names[id] == "" {
				names[id] = name
			}
		}
	}

	props.mu.Lock()
	props.solid, props.fluid, props.lava, props.climb, props.names, props.loaded = solid, fluid, lava, climb, names, true
	props.mu.Unlock()
	return nil
}

func IsSolidState(stateID int32) bool {
	if stateID <= 0 {
		return false
	}
	props.mu.RLock()
	defer props.mu.RUnlock()
	if props.loaded && int(stateID) < len(props.solid) {
		return props.solid[stateID]
	}
	return !inFluidFallback(stateID)
}

func IsFluidState(stateID int32) bool {
	props.mu.RLock()
	loaded := props.loaded
	var v bool
	if loaded && int(stateID) < len(props.fluid) {
		v = props.fluid[stateID]
	}
	props.mu.RUnlock()
	if loaded {
		return v
	}
	return inFluidFallback(stateID)
}

func IsClimbableState(stateID int32) bool {
	props.mu.RLock()
	loaded := props.loaded
	var v bool
	if loaded && int(stateID) < len(props.climb) {
		v = props.climb[stateID]
	}
	props.mu.RUnlock()
	if loaded {
		return v
	}
	return inClimbFallback(stateID)
}

func IsLavaState(stateID int32) bool {
	props.mu.RLock()
	loaded := props.loaded
	var v bool
	if loaded && int(stateID) < len(props.lava) {
		v = props.lava[stateID]
	}
	props.mu.RUnlock()
	if loaded {
		return v
	}
	return stateID >= defaultLavaMinState && stateID <= defaultLavaMaxState
}

func BlockName(stateID int32) (string, bool) {
	props.mu.RLock()
	defer props.mu.RUnlock()
	if !props.loaded || stateID < 0 || int(stateID) >= len(props.names) {
		return "", false
	}
	name := props.names[stateID]
	return name, name != ""
}

func inFluidFallback(stateID int32) bool {
	return (stateID >= defaultWaterMinState && stateID <= defaultWaterMaxState) ||
		(stateID >= defaultLavaMinState && stateID <= defaultLavaMaxState)
}

func inClimbFallback(stateID int32) bool {
	return stateID == defaultLadderState ||
		(stateID >= defaultVineMinState && stateID <= defaultVineMaxState)
}
