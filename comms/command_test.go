package comms

import (
	"encoding/json"
	"testing"

	deviceerrors "github.com/CodedInternet/golinebot/onboard/errors"
	"github.com/CodedInternet/golinebot/onboard/hardware"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseLine(t *testing.T) {
	Convey("motion words, letters and indexes parse", t, func() {
		tests := []struct {
			line   string
			motion hardware.Motion
		}{
			{"forward", hardware.Forward},
			{"  Backward ", hardware.Backward},
			{"L", hardware.Left},
			{"r", hardware.Right},
			{"S", hardware.Stop},
			{"3", hardware.Left},
			{"motion right", hardware.Right},
		}

		for _, tt := range tests {
			cmd, err := ParseLine(tt.line)
			So(err, ShouldBeNil)
			So(cmd.Cmd, ShouldEqual, CMD_MOTION)

			motion, err := cmd.Motion()
			So(err, ShouldBeNil)
			So(motion, ShouldEqual, tt.motion)
		}
	})

	Convey("settings parse with their argument", t, func() {
		cmd, err := ParseLine("speed 200")
		So(err, ShouldBeNil)
		So(cmd, ShouldResemble, Cmd{Cmd: CMD_SPEED, Value: 200})

		cmd, err = ParseLine("mode auto")
		So(err, ShouldBeNil)
		So(cmd, ShouldResemble, Cmd{Cmd: CMD_MODE, Name: "auto"})

		cmd, err = ParseLine("manual")
		So(err, ShouldBeNil)
		So(cmd, ShouldResemble, Cmd{Cmd: CMD_MODE, Name: "manual"})

		cmd, err = ParseLine("color off")
		So(err, ShouldBeNil)
		So(cmd, ShouldResemble, Cmd{Cmd: CMD_COLOR, Name: "off"})
	})

	Convey("bad lines are rejected", t, func() {
		_, err := ParseLine("   ")
		So(err, ShouldEqual, ErrEmptyCommand)

		_, err = ParseLine("5")
		So(err, ShouldBeError)

		_, err = ParseLine("speed fast")
		So(err, ShouldBeError)

		_, err = ParseLine("speed 300")
		So(err, ShouldBeError)

		_, err = ParseLine("color purple")
		So(err, ShouldResemble, deviceerrors.UnknownColorError{Name: "purple"})

		_, err = ParseLine("jump")
		So(err, ShouldBeError)

		_, err = ParseLine("speed 200 now")
		So(err, ShouldBeError)
	})
}

func TestCmdValidate(t *testing.T) {
	Convey("unknown kinds are rejected", t, func() {
		So(Cmd{Cmd: "set_height"}.Validate(), ShouldBeError)
	})

	Convey("fractional values are rejected", t, func() {
		So(Cmd{Cmd: CMD_SPEED, Value: 130.5}.Validate(), ShouldBeError)
		So(Cmd{Cmd: CMD_MOTION, Value: 1.5}.Validate(), ShouldBeError)
	})

	Convey("an empty motion command is stop", t, func() {
		motion, err := Cmd{Cmd: CMD_MOTION}.Motion()
		So(err, ShouldBeNil)
		So(motion, ShouldEqual, hardware.Stop)

		var cmd Cmd
		So(json.Unmarshal([]byte(`{"cmd":"motion"}`), &cmd), ShouldBeNil)
		So(cmd.Validate(), ShouldBeNil)
		motion, err = cmd.Motion()
		So(err, ShouldBeNil)
		So(motion, ShouldEqual, hardware.Stop)
	})

	Convey("json decodes into commands", t, func() {
		var cmd Cmd
		err := json.Unmarshal([]byte(`{"cmd":"motion","name":"left"}`), &cmd)
		So(err, ShouldBeNil)
		So(cmd.Validate(), ShouldBeNil)
		So(cmd.String(), ShouldEqual, "motion left")
	})
}
