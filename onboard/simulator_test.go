package onboard

import (
	"testing"
	"time"

	"github.com/CodedInternet/golinebot/onboard/hardware"
	. "github.com/smartystreets/goconvey/convey"
)

const count = 40

func TestSimulatedDriver(t *testing.T) {
	Convey("the line sensor changes over time", t, func() {
		driver := NewSimulatedDriver(7)
		defer driver.Close()

		seen := make(map[hardware.Level]bool)
		for i := 0; i < count; i++ {
			level, err := driver.DigitalRead(7)
			So(err, ShouldBeNil)
			seen[level] = true
			if len(seen) == 2 {
				break
			}
			time.Sleep(LINE_INTERVAL)
		}

		So(len(seen), ShouldEqual, 2)
	})
}

func TestNewSimulatedRobot(t *testing.T) {
	Convey("robot gets created successfully", t, func() {
		robot, driver, err := NewSimulatedRobot(DefaultConfig())
		So(err, ShouldBeNil)
		defer driver.Close()

		So(robot.State(), ShouldResemble, hardware.NewRobotState())
		So(len(driver.Writes()), ShouldBeGreaterThan, 0)

		Convey("motions are recorded", func() {
			robot.Move(hardware.Backward)
			So(driver.Level(DefaultConfig().Pins.Motor.In1), ShouldEqual, hardware.High)
		})
	})

	Convey("invalid config does not leak a driver", t, func() {
		config := DefaultConfig()
		config.Control.Hz = -1
		robot, driver, err := NewSimulatedRobot(config)
		So(err, ShouldNotBeNil)
		So(robot, ShouldBeNil)
		So(driver, ShouldBeNil)
	})
}
