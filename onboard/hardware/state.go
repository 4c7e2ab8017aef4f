package hardware

import (
	"strings"

	deviceerrors "github.com/CodedInternet/golinebot/onboard/errors"
)

// Useful duty-cycle range of the motor/driver pair. Below MinSpeed the motors stall.
const (
	ZeroSpeed uint8 = 0
	MinSpeed  uint8 = 120
	MaxSpeed  uint8 = 255
)

// Mode selects who decides the motion: BLE/remote commands or the line sensor.
type Mode uint8

const (
	Manual Mode = iota
	Autonomous
)

func (m Mode) String() string {
	switch m {
	case Manual:
		return "manual"
	case Autonomous:
		return "auto"
	}
	return "unknown"
}

// ParseMode accepts "manual"/"manu" and "auto"/"autonomous".
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "manual", "manu":
		return Manual, nil
	case "auto", "autonomous":
		return Autonomous, nil
	}
	return Manual, deviceerrors.UnknownModeError{Name: name}
}

// RobotState is the live configuration of one robot, mutated by the control loop.
type RobotState struct {
	Mode      Mode  `json:"mode"`
	Speed     uint8 `json:"speed"`
	LineBlack bool  `json:"line_black"` // line sensor currently reads black
}

// NewRobotState returns the boot state: manual, minimum speed, white.
func NewRobotState() RobotState {
	return RobotState{
		Mode:      Manual,
		Speed:     MinSpeed,
		LineBlack: false,
	}
}

// ClampSpeed limits speed to [MinSpeed, MaxSpeed].
func ClampSpeed(speed int) uint8 {
	if speed < int(MinSpeed) {
		return MinSpeed
	}
	if speed > int(MaxSpeed) {
		return MaxSpeed
	}
	return uint8(speed)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) (err error) {
	*m, err = ParseMode(string(text))
	return
}
