package onboard

import (
	"math/rand"
	"time"

	"github.com/CodedInternet/golinebot/onboard/hardware"
)

const LINE_INTERVAL = time.Second / 4

// SimulatedDriver records pin writes like the RecordingDriver and drives the line
// sensor input with a random walk over black and white tape.
type SimulatedDriver struct {
	*hardware.RecordingDriver
	sensor hardware.Pin
	black  bool
	stop   chan struct{}
}

func NewSimulatedDriver(sensor hardware.Pin) (d *SimulatedDriver) {
	d = &SimulatedDriver{
		RecordingDriver: hardware.NewRecordingDriver(),
		sensor:          sensor,
		stop:            make(chan struct{}),
	}
	go d.update()
	return
}

// Close stops the sensor goroutine.
func (d *SimulatedDriver) Close() error {
	close(d.stop)
	return nil
}

func (d *SimulatedDriver) update() {
	for {
		select {
		case <-d.stop:
			return
		case <-time.After(LINE_INTERVAL):
		}

		// stay on the current colour most of the time, like a robot tracking an edge
		if rand.Intn(3) == 0 {
			d.black = !d.black
		}

		level := hardware.Low
		if d.black {
			level = hardware.High
		}
		d.SetInput(d.sensor, level)
	}
}

// NewSimulatedRobot builds a Robot on a SimulatedDriver.
func NewSimulatedRobot(config RobotConfig) (*Robot, *SimulatedDriver, error) {
	driver := NewSimulatedDriver(config.Pins.LineSensor)
	robot, err := NewRobot(config, driver)
	if err != nil {
		driver.Close()
		return nil, nil, err
	}
	return robot, driver, nil
}
