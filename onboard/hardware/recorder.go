package hardware

import (
	"fmt"
	"sync"
)

// WriteKind distinguishes the entries of the RecordingDriver write log.
type WriteKind uint8

const (
	WriteMode WriteKind = iota
	WriteDigital
	WriteAnalog
)

// Write is one recorded driver call.
type Write struct {
	Kind  WriteKind
	Pin   Pin
	Value uint8 // PinMode, Level or duty depending on Kind
}

func (w Write) String() string {
	switch w.Kind {
	case WriteMode:
		return fmt.Sprintf("mode(%d)=%s", w.Pin, PinMode(w.Value))
	case WriteDigital:
		return fmt.Sprintf("digital(%d)=%s", w.Pin, Level(w.Value))
	default:
		return fmt.Sprintf("analog(%d)=%d", w.Pin, w.Value)
	}
}

// RecordingDriver is an in-memory Driver. It keeps the last value written to every
// pin plus an ordered log of all writes.
type RecordingDriver struct {
	lock   sync.Mutex
	modes  map[Pin]PinMode
	levels map[Pin]Level
	duty   map[Pin]uint8
	inputs map[Pin]Level
	writes []Write

	// WriteErr, when set, is returned by every write instead of recording it.
	WriteErr error
}

func NewRecordingDriver() *RecordingDriver {
	return &RecordingDriver{
		modes:  make(map[Pin]PinMode),
		levels: make(map[Pin]Level),
		duty:   make(map[Pin]uint8),
		inputs: make(map[Pin]Level),
	}
}

func (d *RecordingDriver) PinMode(pin Pin, mode PinMode) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.WriteErr != nil {
		return d.WriteErr
	}
	d.modes[pin] = mode
	d.writes = append(d.writes, Write{WriteMode, pin, uint8(mode)})
	return nil
}

func (d *RecordingDriver) DigitalWrite(pin Pin, level Level) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.WriteErr != nil {
		return d.WriteErr
	}
	d.levels[pin] = level
	d.writes = append(d.writes, Write{WriteDigital, pin, uint8(level)})
	return nil
}

func (d *RecordingDriver) AnalogWrite(pin Pin, duty uint8) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.WriteErr != nil {
		return d.WriteErr
	}
	d.duty[pin] = duty
	d.writes = append(d.writes, Write{WriteAnalog, pin, duty})
	return nil
}

func (d *RecordingDriver) DigitalRead(pin Pin) (Level, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.inputs[pin], nil
}

// SetInput sets the level returned by DigitalRead for pin.
func (d *RecordingDriver) SetInput(pin Pin, level Level) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.inputs[pin] = level
}

// Mode returns the last mode configured on pin and whether one was configured.
func (d *RecordingDriver) Mode(pin Pin) (PinMode, bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	m, ok := d.modes[pin]
	return m, ok
}

// Level returns the last level written to pin. Unwritten pins read Low.
func (d *RecordingDriver) Level(pin Pin) Level {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.levels[pin]
}

// Duty returns the last duty cycle written to pin.
func (d *RecordingDriver) Duty(pin Pin) uint8 {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.duty[pin]
}

// Writes returns a copy of the write log.
func (d *RecordingDriver) Writes() []Write {
	d.lock.Lock()
	defer d.lock.Unlock()

	out := make([]Write, len(d.writes))
	copy(out, d.writes)
	return out
}

// Reset clears the write log, keeping pin levels, duty cycles and modes.
func (d *RecordingDriver) Reset() {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.writes = nil
}
