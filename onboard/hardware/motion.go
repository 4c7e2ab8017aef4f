package hardware

// Motion is one of the discrete movements of the differential drive.
type Motion uint8

const (
	Stop Motion = iota
	Forward
	Backward
	Left
	Right
)

// MotorPins is the L298 wiring. In1/In2 and In3/In4 are the direction lines of
// the two channels, the enables carry the PWM duty cycle.
type MotorPins struct {
	In1         Pin `yaml:"in1" json:"in1"`
	In2         Pin `yaml:"in2" json:"in2"`
	In3         Pin `yaml:"in3" json:"in3"`
	In4         Pin `yaml:"in4" json:"in4"`
	EnableLeft  Pin `yaml:"ena" json:"ena"`
	EnableRight Pin `yaml:"enb" json:"enb"`
}

// DefaultMotorPins is the L298 wiring on the MKR WiFi 1010 board.
var DefaultMotorPins = MotorPins{
	In1:         11,
	In2:         12,
	In3:         2,
	In4:         3,
	EnableLeft:  4,
	EnableRight: 5,
}

func (p MotorPins) direction() [4]Pin {
	return [4]Pin{p.In1, p.In2, p.In3, p.In4}
}

// pattern is the direction line levels for In1..In4.
type pattern [4]bool

var (
	stopPattern     = pattern{false, false, false, false}
	forwardPattern  = pattern{false, true, true, false}
	backwardPattern = pattern{true, false, false, true}
	leftPattern     = pattern{false, true, false, true}
	rightPattern    = pattern{true, false, true, false}
)

// MotionController translates motions into direction and PWM writes. It holds no
// motion state of its own: every call re-applies a complete pin pattern.
type MotionController struct {
	stickyErr
	driver Driver
	pins   MotorPins
}

func NewMotionController(driver Driver, pins MotorPins) *MotionController {
	return &MotionController{
		driver: driver,
		pins:   pins,
	}
}

// InitializeIO configures the direction lines as low outputs, the enables as
// PWM outputs and applies state.Speed. Must run once before any motion.
func (m *MotionController) InitializeIO(state *RobotState) {
	for _, pin := range m.pins.direction() {
		m.keep(m.driver.PinMode(pin, Output))
		m.keep(m.driver.DigitalWrite(pin, Low))
	}

	m.keep(m.driver.PinMode(m.pins.EnableLeft, PWM))
	m.keep(m.driver.PinMode(m.pins.EnableRight, PWM))

	m.SetSpeed(state.Speed)
}

// SetSpeed writes speed as the duty cycle of both enables. No validation is done;
// values below MinSpeed stall the motors.
func (m *MotionController) SetSpeed(speed uint8) {
	assertSpeed(speed)
	m.keep(m.driver.AnalogWrite(m.pins.EnableLeft, speed))
	m.keep(m.driver.AnalogWrite(m.pins.EnableRight, speed))
}

func (m *MotionController) Forward() {
	m.direct(forwardPattern)
}

func (m *MotionController) Backward() {
	m.direct(backwardPattern)
}

// Left disables the right channel and asserts the backward lines.
func (m *MotionController) Left() {
	m.keep(m.driver.AnalogWrite(m.pins.EnableRight, ZeroSpeed))
	m.direct(leftPattern)
}

// Right disables the left channel and asserts the forward lines.
func (m *MotionController) Right() {
	m.keep(m.driver.AnalogWrite(m.pins.EnableLeft, ZeroSpeed))
	m.direct(rightPattern)
}

// Stop pulls every direction line low. Duty cycles are left alone so the
// driver coasts.
func (m *MotionController) Stop() {
	m.direct(stopPattern)
}

// Apply runs the routine registered for motion in the MotionMap.
func (m *MotionController) Apply(motion Motion) {
	assertMotion(motion)
	if e, ok := MotionMap.ByMotion(motion); ok {
		e.Action(m)
	}
}

// direct releases lines before asserting any, so a channel never has both of its
// direction lines high (L298 brake) between two patterns.
func (m *MotionController) direct(p pattern) {
	lines := m.pins.direction()
	for _, high := range []bool{false, true} {
		for i, pin := range lines {
			if p[i] == high {
				m.keep(m.driver.DigitalWrite(pin, levelOf(high)))
			}
		}
	}
}
