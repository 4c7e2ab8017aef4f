package hardware

import (
	"testing"

	deviceerrors "github.com/CodedInternet/golinebot/onboard/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMotionMap(t *testing.T) {
	Convey("entries are ordered by motion value", t, func() {
		So(len(MotionMap), ShouldEqual, 5)
		for i, e := range MotionMap {
			So(int(e.Motion), ShouldEqual, i)
			So(e.Action, ShouldNotBeNil)
		}
		So(MotionMap.Names(), ShouldResemble, []string{"stop", "forward", "backward", "left", "right"})
	})

	Convey("lookup by name", t, func() {
		e, err := MotionMap.Lookup("Left")
		So(err, ShouldBeNil)
		So(e.Motion, ShouldEqual, Left)

		_, err = MotionMap.Lookup("spin")
		So(err, ShouldResemble, deviceerrors.UnknownMotionError{Name: "spin"})
	})

	Convey("lookup by index", t, func() {
		e, ok := MotionMap.ByIndex(4)
		So(ok, ShouldBeTrue)
		So(e.Name, ShouldEqual, "right")

		_, ok = MotionMap.ByIndex(5)
		So(ok, ShouldBeFalse)
		_, ok = MotionMap.ByIndex(-1)
		So(ok, ShouldBeFalse)
	})

	Convey("motions print their map names", t, func() {
		So(Backward.String(), ShouldEqual, "backward")
		So(Motion(42).String(), ShouldEqual, "unknown")
	})
}

func TestRobotState(t *testing.T) {
	Convey("boot state is manual at minimum speed", t, func() {
		So(NewRobotState(), ShouldResemble, RobotState{Mode: Manual, Speed: 120, LineBlack: false})
	})

	Convey("speeds are clamped to the useful range", t, func() {
		So(ClampSpeed(0), ShouldEqual, MinSpeed)
		So(ClampSpeed(200), ShouldEqual, 200)
		So(ClampSpeed(1000), ShouldEqual, MaxSpeed)
	})

	Convey("modes parse from their short names", t, func() {
		m, err := ParseMode("auto")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, Autonomous)

		m, err = ParseMode("Manu")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, Manual)

		_, err = ParseMode("remote")
		So(err, ShouldHaveSameTypeAs, deviceerrors.UnknownModeError{})
	})
}
