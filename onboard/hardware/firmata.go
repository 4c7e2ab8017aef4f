package hardware

import (
	"fmt"
	"strconv"
	"sync"

	deviceerrors "github.com/CodedInternet/golinebot/onboard/errors"
	"gobot.io/x/gobot/platforms/firmata"
)

// FirmataDriver drives an Arduino running StandardFirmata over a serial port.
type FirmataDriver struct {
	adaptor *firmata.Adaptor
	lock    sync.Mutex
	modes   map[Pin]PinMode
}

// NewFirmataDriver connects to the board on port (e.g. /dev/ttyACM0).
func NewFirmataDriver(port string) (d *FirmataDriver, err error) {
	d = newFirmataDriver(firmata.NewAdaptor(port))

	if err = d.adaptor.Connect(); err != nil {
		return nil, fmt.Errorf("connect firmata on %s: %w", port, err)
	}

	return
}

func newFirmataDriver(adaptor *firmata.Adaptor) *FirmataDriver {
	return &FirmataDriver{
		adaptor: adaptor,
		modes:   make(map[Pin]PinMode),
	}
}

// PinMode only records mode: gobot switches the board pin mode itself on the
// first digital/PWM write or read. The recorded mode guards later calls.
func (d *FirmataDriver) PinMode(pin Pin, mode PinMode) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.modes[pin] = mode
	return nil
}

// require must be called with the lock held.
func (d *FirmataDriver) require(pin Pin, want PinMode) error {
	got, ok := d.modes[pin]
	if !ok {
		return deviceerrors.PinModeError{Pin: uint8(pin), Want: want.String(), Got: "UNSET"}
	}
	if got != want {
		return deviceerrors.PinModeError{Pin: uint8(pin), Want: want.String(), Got: got.String()}
	}
	return nil
}

func (d *FirmataDriver) DigitalWrite(pin Pin, level Level) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if err := d.require(pin, Output); err != nil {
		return err
	}
	return d.adaptor.DigitalWrite(pinName(pin), byte(level))
}

func (d *FirmataDriver) AnalogWrite(pin Pin, duty uint8) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if err := d.require(pin, PWM); err != nil {
		return err
	}
	return d.adaptor.PwmWrite(pinName(pin), duty)
}

func (d *FirmataDriver) DigitalRead(pin Pin) (Level, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if err := d.require(pin, Input); err != nil {
		return Low, err
	}
	val, err := d.adaptor.DigitalRead(pinName(pin))
	if err != nil {
		return Low, err
	}
	return levelOf(val != 0), nil
}

// Close releases the serial port.
func (d *FirmataDriver) Close() error {
	return d.adaptor.Finalize()
}

func pinName(pin Pin) string {
	return strconv.Itoa(int(pin))
}
