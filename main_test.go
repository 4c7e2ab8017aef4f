package main

import (
	"io/ioutil"
	"log"

	"github.com/CodedInternet/golinebot/comms"
	"github.com/CodedInternet/golinebot/onboard"
	"github.com/CodedInternet/golinebot/onboard/hardware"
)

const (
	testEmail    = "login@test.case"
	testPassword = "testing123"
)

// setupTestEnv points ENV at a fresh robot on a RecordingDriver with one operator.
// The conductor is not running; tests drive it or inspect its queue.
func setupTestEnv() *hardware.RecordingDriver {
	user := &User{Email: testEmail}
	user.SetPassword([]byte(testPassword))

	config := onboard.DefaultConfig()
	config.Operators = []onboard.Operator{{Email: user.Email, PasswordHash: user.Password}}

	driver := hardware.NewRecordingDriver()
	robot, err := onboard.NewRobot(config, driver)
	if err != nil {
		panic(err)
	}

	ENV.Config = config
	ENV.Conductor = comms.NewConductor(robot, log.New(ioutil.Discard, "", 0))
	ENV.DEBUG = false
	return driver
}
