package protocol

import "sync"

// State is one of the four protocol states. Transitions are monotonic
// forward moves triggered by specific packets, except the play→configuration
// reversion the server may request mid-game (see ConnState.Set).
type State int

const (
	StateHandshaking State = iota
	StateLogin
	StateConfiguration
	StatePlay
)

func (s State) String() string {
	switch s {
	case StateHandshaking:
		return "handshaking"
	case StateLogin:
		return "login"
	case StateConfiguration:
		return "configuration"
	case StatePlay:
		return "play"
	default:
		return "unknown"
	}
}

// ConnState holds the mutable connection state shared between the reader
// goroutine and the apply loop: the current protocol state and the
// compression threshold. Both fields are guarded by the same mutex because
// they change together at well-defined points in the handshake.
type ConnState struct {
	mu        sync.Mutex
	state     State
	threshold int
}

func NewConnState() *ConnState {
	return &ConnState{threshold: -1}
}

func (cs *ConnState) Set(s State) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.state = s
}

func (cs *ConnState) Get() State {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.state
}

// SetThreshold may be called at any state: the spec only says compression is
// "off" until a nonnegative threshold is set, never that it can only be set
// once during login.
func (cs *ConnState) SetThreshold(t int) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.threshold = t
}

func (cs *ConnState) Threshold() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.threshold
}

// CompressionEnabled reports whether a nonnegative threshold has been set.
func (cs *ConnState) CompressionEnabled() bool {
	return cs.Threshold() >= 0
}
