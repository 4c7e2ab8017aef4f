package hardware

import (
	"errors"
	"testing"

	deviceerrors "github.com/CodedInternet/golinebot/onboard/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func createTestIndicator() (*RecordingDriver, *RGBIndicator) {
	driver := NewRecordingDriver()
	rgb := NewRGBIndicator(driver, DefaultRGBPins)
	rgb.Initialize()
	return driver, rgb
}

func TestRGBIndicator(t *testing.T) {
	Convey("initialize configures the three lines as outputs", t, func() {
		driver, _ := createTestIndicator()

		for _, pin := range []Pin{14, 13, 10} {
			mode, ok := driver.Mode(pin)
			So(ok, ShouldBeTrue)
			So(mode, ShouldEqual, Output)
		}
	})

	Convey("set color drives exactly the matching line high", t, func() {
		driver, rgb := createTestIndicator()

		for _, c := range []Color{Red, Green, Blue} {
			rgb.SetColor(c)

			high := 0
			for _, other := range []Color{Red, Green, Blue} {
				pin, _ := DefaultRGBPins.Pin(other)
				if driver.Level(pin) == High {
					high++
					So(other, ShouldEqual, c)
				}
			}
			So(high, ShouldEqual, 1)
		}

		Convey("repeating a color re-asserts the same levels", func() {
			rgb.SetColor(Green)
			driver.Reset()
			rgb.SetColor(Green)

			So(driver.Level(DefaultRGBPins.Green), ShouldEqual, High)
			So(driver.Level(DefaultRGBPins.Red), ShouldEqual, Low)
			So(driver.Level(DefaultRGBPins.Blue), ShouldEqual, Low)
			So(len(driver.Writes()), ShouldEqual, 3)
		})

		Convey("off pulls every line low", func() {
			rgb.SetColor(Blue)
			rgb.Off()

			So(driver.Level(DefaultRGBPins.Red), ShouldEqual, Low)
			So(driver.Level(DefaultRGBPins.Green), ShouldEqual, Low)
			So(driver.Level(DefaultRGBPins.Blue), ShouldEqual, Low)
		})
	})

	Convey("rewired pins are honoured without renumbering colors", t, func() {
		driver := NewRecordingDriver()
		rgb := NewRGBIndicator(driver, RGBPins{Red: 7, Green: 8, Blue: 9})
		rgb.Initialize()
		rgb.SetColor(Red)

		So(driver.Level(7), ShouldEqual, High)
		So(driver.Level(8), ShouldEqual, Low)
		So(driver.Level(9), ShouldEqual, Low)
	})

	Convey("driver errors are kept until reset", t, func() {
		driver, rgb := createTestIndicator()
		driver.WriteErr = errors.New("this is a simulated tx error")

		rgb.SetColor(Red)
		So(rgb.Err(), ShouldEqual, driver.WriteErr)

		rgb.ResetErr()
		So(rgb.Err(), ShouldBeNil)
	})
}

func TestParseColor(t *testing.T) {
	Convey("names parse case insensitively", t, func() {
		c, err := ParseColor("GREEN")
		So(err, ShouldBeNil)
		So(c, ShouldEqual, Green)
		So(c.String(), ShouldEqual, "green")
	})

	Convey("unknown names return a typed error", t, func() {
		_, err := ParseColor("purple")
		So(err, ShouldResemble, deviceerrors.UnknownColorError{Name: "purple"})
	})
}
