package comms

import (
	"github.com/CodedInternet/golinebot/onboard/hardware"
)

// StatePayload is the robot snapshot sent to remote clients.
type StatePayload struct {
	hardware.RobotState
	Motion string `json:"motion"`
	Color  string `json:"color"`
	Tick   uint64 `json:"tick"`
}

// ControlReply acknowledges a command received from a remote client.
type ControlReply struct {
	Cmd   Cmd    `json:"cmd"`
	Error string `json:"error,omitempty"`
}

// ControlMessage decodes either message of the control socket. Cmd is nil for
// state updates.
type ControlMessage struct {
	StatePayload
	Cmd   *Cmd   `json:"cmd,omitempty"`
	Error string `json:"error,omitempty"`
}

// sameState compares two snapshots ignoring the tick counter.
func sameState(a, b StatePayload) bool {
	a.Tick, b.Tick = 0, 0
	return a == b
}
