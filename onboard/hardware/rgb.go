package hardware

import (
	"strings"

	deviceerrors "github.com/CodedInternet/golinebot/onboard/errors"
)

// Color is the status shown on the tri-color LED. It is a pure tag; RGBPins
// decides which physical line it drives.
type Color uint8

const (
	Red Color = iota
	Green
	Blue
)

var colorNames = map[Color]string{
	Red:   "red",
	Green: "green",
	Blue:  "blue",
}

func (c Color) String() string {
	if v, ok := colorNames[c]; ok {
		return v
	}
	return "off"
}

func (c Color) valid() bool {
	_, ok := colorNames[c]
	return ok
}

// ParseColor returns the color with the given (case insensitive) name.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(name)
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return 0, deviceerrors.UnknownColorError{Name: name}
}

// RGBPins wires each color channel to an output pin.
type RGBPins struct {
	Red   Pin `yaml:"red" json:"red"`
	Green Pin `yaml:"green" json:"green"`
	Blue  Pin `yaml:"blue" json:"blue"`
}

// DefaultRGBPins is the LED wiring of the MKR WiFi 1010 board.
var DefaultRGBPins = RGBPins{Red: 14, Green: 13, Blue: 10}

// Pin returns the line driven by c.
func (p RGBPins) Pin(c Color) (Pin, bool) {
	switch c {
	case Red:
		return p.Red, true
	case Green:
		return p.Green, true
	case Blue:
		return p.Blue, true
	}
	return 0, false
}

// RGBIndicator drives exactly one of three LED lines high.
type RGBIndicator struct {
	stickyErr
	driver Driver
	pins   RGBPins
}

func NewRGBIndicator(driver Driver, pins RGBPins) *RGBIndicator {
	return &RGBIndicator{
		driver: driver,
		pins:   pins,
	}
}

// Initialize configures the three LED lines as outputs. Call once before SetColor.
func (i *RGBIndicator) Initialize() {
	for _, c := range []Color{Red, Green, Blue} {
		pin, _ := i.pins.Pin(c)
		i.keep(i.driver.PinMode(pin, Output))
	}
}

// SetColor drives the line of color high and the other two low.
func (i *RGBIndicator) SetColor(color Color) {
	assertColor(color)
	i.apply(color)
}

// Off drives all three lines low.
func (i *RGBIndicator) Off() {
	i.apply(Color(len(colorNames)))
}

func (i *RGBIndicator) apply(color Color) {
	for _, c := range []Color{Red, Green, Blue} {
		pin, _ := i.pins.Pin(c)
		i.keep(i.driver.DigitalWrite(pin, levelOf(c == color)))
	}
}
