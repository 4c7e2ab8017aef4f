package comms

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/CodedInternet/golinebot/onboard/hardware"
)

const (
	CMD_MOTION = "motion"
	CMD_SPEED  = "speed"
	CMD_MODE   = "mode"
	CMD_COLOR  = "color"

	COLOR_OFF = "off"
)

var (
	ErrEmptyCommand = errors.New("empty command")
)

// Cmd is a single instruction from a remote client or the line protocol.
// Motions are addressed by Name, or by MotionMap index in Value when Name is empty.
// A motion with neither resolves to index 0, which is Stop: an empty motion
// command always halts the robot.
type Cmd struct {
	Cmd   string  `json:"cmd"`
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
}

func (c Cmd) String() string {
	switch c.Cmd {
	case CMD_SPEED:
		return fmt.Sprintf("%s %d", c.Cmd, int(c.Value))
	case CMD_MOTION:
		if c.Name == "" {
			return fmt.Sprintf("%s #%d", c.Cmd, int(c.Value))
		}
	}
	return fmt.Sprintf("%s %s", c.Cmd, c.Name)
}

// Validate checks the command against the known kinds, names and ranges.
func (c Cmd) Validate() error {
	switch c.Cmd {
	case CMD_MOTION:
		_, err := c.Motion()
		return err

	case CMD_SPEED:
		if c.Value < 0 || c.Value > 255 || c.Value != math.Trunc(c.Value) {
			return fmt.Errorf("speed %v is not a duty cycle in [0, 255]", c.Value)
		}
		return nil

	case CMD_MODE:
		_, err := hardware.ParseMode(c.Name)
		return err

	case CMD_COLOR:
		if strings.ToLower(c.Name) == COLOR_OFF {
			return nil
		}
		_, err := hardware.ParseColor(c.Name)
		return err

	default:
		return fmt.Errorf("unknown command %q", c.Cmd)
	}
}

// Motion resolves a motion command through the MotionMap.
func (c Cmd) Motion() (hardware.Motion, error) {
	if c.Name != "" {
		e, err := hardware.MotionMap.Lookup(c.Name)
		return e.Motion, err
	}

	if c.Value != math.Trunc(c.Value) {
		return hardware.Stop, fmt.Errorf("motion index %v is not an integer", c.Value)
	}
	e, ok := hardware.MotionMap.ByIndex(int(c.Value))
	if !ok {
		return hardware.Stop, fmt.Errorf("motion index %d out of range", int(c.Value))
	}
	return e.Motion, nil
}

// letters are the one character motion commands of the BLE terminal.
var letters = map[string]string{
	"s": "stop",
	"f": "forward",
	"b": "backward",
	"l": "left",
	"r": "right",
}

// ParseLine parses one line of the text protocol, e.g. "forward", "F", "3",
// "speed 200", "mode auto" or "color red".
func ParseLine(line string) (cmd Cmd, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return cmd, ErrEmptyCommand
	}

	switch {
	case len(fields) == 1:
		cmd, err = parseWord(fields[0])

	case len(fields) == 2:
		switch fields[0] {
		case CMD_SPEED:
			var speed int
			speed, err = strconv.Atoi(fields[1])
			cmd = Cmd{Cmd: CMD_SPEED, Value: float64(speed)}
		case CMD_MODE, CMD_COLOR, CMD_MOTION:
			cmd = Cmd{Cmd: fields[0], Name: fields[1]}
		default:
			err = fmt.Errorf("unknown command %q", fields[0])
		}

	default:
		err = fmt.Errorf("too many arguments in %q", line)
	}

	if err != nil {
		return
	}
	err = cmd.Validate()
	return
}

func parseWord(word string) (Cmd, error) {
	if name, ok := letters[word]; ok {
		return Cmd{Cmd: CMD_MOTION, Name: name}, nil
	}

	if _, err := hardware.MotionMap.Lookup(word); err == nil {
		return Cmd{Cmd: CMD_MOTION, Name: word}, nil
	}

	if index, err := strconv.Atoi(word); err == nil {
		return Cmd{Cmd: CMD_MOTION, Value: float64(index)}, nil
	}

	if _, err := hardware.ParseMode(word); err == nil {
		return Cmd{Cmd: CMD_MODE, Name: word}, nil
	}

	return Cmd{}, fmt.Errorf("unknown command %q", word)
}
