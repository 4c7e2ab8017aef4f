package onboard

import (
	"fmt"
	"io/ioutil"

	"github.com/CodedInternet/golinebot/onboard/errors"
	"github.com/CodedInternet/golinebot/onboard/hardware"
	"github.com/Masterminds/semver"
	"gopkg.in/yaml.v2"
)

const (
	// SUPPORTED_REVISIONS is the range of board revisions this firmware knows the wiring of
	SUPPORTED_REVISIONS = ">= 1.0.0, < 2.0.0"

	DEFAULT_CONTROL_HZ = 50
	MAX_CONTROL_HZ     = 1000
)

type RobotConfig struct {
	Revision  string        `yaml:"revision"`
	Pins      PinConfig     `yaml:"pins"`
	Control   ControlConfig `yaml:"control"`
	Operators []Operator    `yaml:"operators"`
}

type PinConfig struct {
	Motor      hardware.MotorPins `yaml:"motor"`
	RGB        hardware.RGBPins   `yaml:"rgb"`
	LineSensor hardware.Pin       `yaml:"line_sensor"`
}

type ControlConfig struct {
	Hz        int   `yaml:"hz"`
	AutoSpeed uint8 `yaml:"auto_speed"` // speed applied when entering autonomous mode
}

// Operator is a remote user allowed to drive the robot. PasswordHash is a bcrypt hash.
type Operator struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
}

// DefaultConfig is the L298 + MKR WiFi 1010 build.
func DefaultConfig() RobotConfig {
	return RobotConfig{
		Revision: "1.0.0",
		Pins: PinConfig{
			Motor:      hardware.DefaultMotorPins,
			RGB:        hardware.DefaultRGBPins,
			LineSensor: 7,
		},
		Control: ControlConfig{
			Hz:        DEFAULT_CONTROL_HZ,
			AutoSpeed: hardware.MinSpeed,
		},
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
func LoadConfig(filename string) (config RobotConfig, err error) {
	config = DefaultConfig()

	yamlFile, err := ioutil.ReadFile(filename)
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", filename, err)
	}

	if err = yaml.Unmarshal(yamlFile, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", filename, err)
	}

	err = config.Validate()
	return
}

func (c RobotConfig) Validate() error {
	version, err := semver.NewVersion(c.Revision)
	if err != nil {
		return errors.UnsupportedRevisionError{Revision: c.Revision, Constraint: SUPPORTED_REVISIONS}
	}

	constraint, err := semver.NewConstraint(SUPPORTED_REVISIONS)
	if err != nil {
		return err
	}

	if !constraint.Check(version) {
		return errors.UnsupportedRevisionError{Revision: c.Revision, Constraint: SUPPORTED_REVISIONS}
	}

	if c.Control.Hz <= 0 || c.Control.Hz > MAX_CONTROL_HZ {
		return fmt.Errorf("control loop rate must be in (0, %d] Hz, got %d", MAX_CONTROL_HZ, c.Control.Hz)
	}

	return c.Pins.checkConflicts()
}

func (p PinConfig) checkConflicts() error {
	signals := []struct {
		name string
		pin  hardware.Pin
	}{
		{"in1", p.Motor.In1},
		{"in2", p.Motor.In2},
		{"in3", p.Motor.In3},
		{"in4", p.Motor.In4},
		{"ena", p.Motor.EnableLeft},
		{"enb", p.Motor.EnableRight},
		{"red", p.RGB.Red},
		{"green", p.RGB.Green},
		{"blue", p.RGB.Blue},
		{"line_sensor", p.LineSensor},
	}

	used := make(map[hardware.Pin]string, len(signals))
	for _, s := range signals {
		if first, ok := used[s.pin]; ok {
			return errors.PinConflictError{Pin: uint8(s.pin), First: first, Second: s.name}
		}
		used[s.pin] = s.name
	}

	return nil
}
