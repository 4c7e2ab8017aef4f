package hardware

import (
	"testing"

	deviceerrors "github.com/CodedInternet/golinebot/onboard/errors"
	. "github.com/smartystreets/goconvey/convey"
	"gobot.io/x/gobot/platforms/firmata"
)

func TestFirmataPinModes(t *testing.T) {
	Convey("Given a driver that is not connected", t, func() {
		d := newFirmataDriver(firmata.NewAdaptor("/dev/null"))

		Convey("unconfigured pins are refused before reaching the board", func() {
			So(d.AnalogWrite(4, 200), ShouldResemble, deviceerrors.PinModeError{Pin: 4, Want: "PWM", Got: "UNSET"})

			_, err := d.DigitalRead(7)
			So(err, ShouldResemble, deviceerrors.PinModeError{Pin: 7, Want: "INPUT", Got: "UNSET"})
		})

		Convey("a pin is only used in the mode it was configured for", func() {
			So(d.PinMode(11, Output), ShouldBeNil)
			So(d.AnalogWrite(11, 200), ShouldResemble, deviceerrors.PinModeError{Pin: 11, Want: "PWM", Got: "OUTPUT"})

			So(d.PinMode(5, PWM), ShouldBeNil)
			So(d.DigitalWrite(5, High), ShouldResemble, deviceerrors.PinModeError{Pin: 5, Want: "OUTPUT", Got: "PWM"})
		})
	})
}
