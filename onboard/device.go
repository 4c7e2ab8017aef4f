package onboard

import (
	"github.com/CodedInternet/golinebot/onboard/hardware"
)

// noColor marks the indicator as extinguished.
const noColor = hardware.Color(255)

// Robot is one line-following robot: the status LED, the differential drive and
// the live state. It is not safe for concurrent use; a single control loop owns it.
type Robot struct {
	RGB    *hardware.RGBIndicator
	Motion *hardware.MotionController

	config     RobotConfig
	driver     hardware.Driver
	state      hardware.RobotState
	lastMotion hardware.Motion
	color      hardware.Color
}

// NewRobot wires the components onto driver and brings the IO up in the boot state.
func NewRobot(config RobotConfig, driver hardware.Driver) (r *Robot, err error) {
	if err = config.Validate(); err != nil {
		return
	}

	r = &Robot{
		RGB:        hardware.NewRGBIndicator(driver, config.Pins.RGB),
		Motion:     hardware.NewMotionController(driver, config.Pins.Motor),
		config:     config,
		driver:     driver,
		state:      hardware.NewRobotState(),
		lastMotion: hardware.Stop,
		color:      noColor,
	}

	r.RGB.Initialize()
	r.Motion.InitializeIO(&r.state)
	if err = driver.PinMode(config.Pins.LineSensor, hardware.Input); err != nil {
		return nil, err
	}
	r.updateIndicator()

	return r, r.Err()
}

// Move applies motion. Every motion but Stop re-applies the state speed first,
// since a previous pivot leaves one channel at zero duty.
func (r *Robot) Move(motion hardware.Motion) {
	if motion != hardware.Stop {
		r.Motion.SetSpeed(r.state.Speed)
	}

	r.Motion.Apply(motion)
	r.lastMotion = motion
}

// SetSpeed clamps speed into the useful range, stores it and applies it.
func (r *Robot) SetSpeed(speed int) {
	r.state.Speed = hardware.ClampSpeed(speed)
	r.Motion.SetSpeed(r.state.Speed)
}

// SetMode switches between manual and autonomous driving. Any change stops the
// motors so the new owner starts from rest.
func (r *Robot) SetMode(mode hardware.Mode) {
	if mode == r.state.Mode {
		return
	}

	r.state.Mode = mode
	r.Move(hardware.Stop)
	if mode == hardware.Autonomous {
		r.SetSpeed(int(r.config.Control.AutoSpeed))
	}
	r.updateIndicator()
}

// SenseLine refreshes LineBlack from the line sensor input.
func (r *Robot) SenseLine() (black bool, err error) {
	level, err := r.driver.DigitalRead(r.config.Pins.LineSensor)
	if err != nil {
		return r.state.LineBlack, err
	}

	r.state.LineBlack = level == hardware.High
	r.updateIndicator()
	return r.state.LineBlack, nil
}

// SetColor overrides the indicator. While autonomous the next line reading
// restores the mode color.
func (r *Robot) SetColor(color hardware.Color) {
	r.color = color
	r.RGB.SetColor(color)
}

// LEDOff extinguishes the indicator.
func (r *Robot) LEDOff() {
	r.color = noColor
	r.RGB.Off()
}

func (r *Robot) State() hardware.RobotState {
	return r.state
}

func (r *Robot) LastMotion() hardware.Motion {
	return r.lastMotion
}

func (r *Robot) Color() hardware.Color {
	return r.color
}

func (r *Robot) Config() RobotConfig {
	return r.config
}

// Err returns the first hardware error of either component.
func (r *Robot) Err() error {
	if err := r.Motion.Err(); err != nil {
		return err
	}
	return r.RGB.Err()
}

func (r *Robot) ResetErr() {
	r.Motion.ResetErr()
	r.RGB.ResetErr()
}

// updateIndicator shows the mode: blue for manual, green on white and red on
// black while autonomous.
func (r *Robot) updateIndicator() {
	color := hardware.Blue
	if r.state.Mode == hardware.Autonomous {
		color = hardware.Green
		if r.state.LineBlack {
			color = hardware.Red
		}
	}

	if color != r.color {
		r.SetColor(color)
	}
}
