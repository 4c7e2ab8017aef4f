package hardware

// Pin is a physical pin number on the controller board.
type Pin uint8

// Level is the logic level of a digital line.
type Level uint8

const (
	Low  Level = 0
	High Level = 1
)

func levelOf(b bool) Level {
	if b {
		return High
	}
	return Low
}

func (l Level) String() string {
	if l == High {
		return "HIGH"
	}
	return "LOW"
}

// PinMode is the configured direction/function of a pin.
type PinMode uint8

const (
	Input PinMode = iota
	Output
	PWM
)

var pinModeNames = map[PinMode]string{
	Input:  "INPUT",
	Output: "OUTPUT",
	PWM:    "PWM",
}

func (m PinMode) String() string {
	if v, ok := pinModeNames[m]; ok {
		return v
	}
	return "UNKNOWN"
}

// Driver is the pin sink every component writes through. Implementations talk to
// real hardware (FirmataDriver) or record writes (RecordingDriver).
type Driver interface {
	PinMode(pin Pin, mode PinMode) error
	DigitalWrite(pin Pin, level Level) error
	AnalogWrite(pin Pin, duty uint8) error
	DigitalRead(pin Pin) (Level, error)
}

// stickyErr keeps the first error seen by a hot-path component. Writes are fire
// and forget; the control loop checks Err() between ticks.
type stickyErr struct {
	err error
}

func (s *stickyErr) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Err returns the first driver error since the last ResetErr.
func (s *stickyErr) Err() error {
	return s.err
}

func (s *stickyErr) ResetErr() {
	s.err = nil
}
