package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CodedInternet/golinebot/comms"
	"github.com/CodedInternet/golinebot/onboard/hardware"
	. "github.com/smartystreets/goconvey/convey"
)

func authedRequest(method, target string, body []byte) *http.Request {
	ts, err := newJWT(testEmail)
	if err != nil {
		panic(err)
	}

	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+ts)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAPI(t *testing.T) {
	Convey("Given a router on a test robot", t, func() {
		setupTestEnv()
		router := NewRouter()

		serve := func(req *http.Request) *httptest.ResponseRecorder {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			return rr
		}

		Convey("the state reports the boot snapshot", func() {
			rr := serve(authedRequest("GET", "/api/state", nil))
			So(rr.Code, ShouldEqual, http.StatusOK)

			var state comms.StatePayload
			So(json.Unmarshal(rr.Body.Bytes(), &state), ShouldBeNil)
			So(state.Mode, ShouldEqual, hardware.Manual)
			So(state.Speed, ShouldEqual, hardware.MinSpeed)
			So(state.Motion, ShouldEqual, "stop")
			So(state.Color, ShouldEqual, "blue")
		})

		Convey("motions are listed in table order", func() {
			rr := serve(authedRequest("GET", "/api/motions", nil))
			So(rr.Code, ShouldEqual, http.StatusOK)

			var motions []MotionPayload
			So(json.Unmarshal(rr.Body.Bytes(), &motions), ShouldBeNil)
			So(len(motions), ShouldEqual, len(hardware.MotionMap))
			So(motions[1], ShouldResemble, MotionPayload{Index: 1, Name: "forward"})
		})

		Convey("a valid command is accepted and echoed", func() {
			body, _ := json.Marshal(comms.Cmd{Cmd: comms.CMD_SPEED, Value: 180})
			rr := serve(authedRequest("POST", "/api/command", body))
			So(rr.Code, ShouldEqual, http.StatusAccepted)

			var cmd comms.Cmd
			So(json.Unmarshal(rr.Body.Bytes(), &cmd), ShouldBeNil)
			So(cmd, ShouldResemble, comms.Cmd{Cmd: comms.CMD_SPEED, Value: 180})

			// nothing applies until the control loop ticks
			So(ENV.Conductor.Robot.State().Speed, ShouldEqual, hardware.MinSpeed)
		})

		Convey("invalid commands are refused", func() {
			body, _ := json.Marshal(comms.Cmd{Cmd: comms.CMD_MOTION, Name: "spin"})
			So(serve(authedRequest("POST", "/api/command", body)).Code, ShouldEqual, http.StatusBadRequest)

			So(serve(authedRequest("POST", "/api/command", []byte(`{}`))).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("a full queue reports unavailable", func() {
			body, _ := json.Marshal(comms.Cmd{Cmd: comms.CMD_MOTION, Name: "stop"})
			for i := 0; i < comms.CMD_QUEUE_SIZE; i++ {
				So(serve(authedRequest("POST", "/api/command", body)).Code, ShouldEqual, http.StatusAccepted)
			}
			So(serve(authedRequest("POST", "/api/command", body)).Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("the API needs a token", func() {
			So(serve(httptest.NewRequest("GET", "/api/state", nil)).Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("login is open", func() {
			body, _ := json.Marshal(&LoginPayload{Email: testEmail, Password: testPassword})
			req := httptest.NewRequest("POST", "/api/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			So(serve(req).Code, ShouldEqual, http.StatusOK)
		})

		Convey("tokens can be refreshed", func() {
			rr := serve(authedRequest("GET", "/api/refresh_token", nil))
			So(rr.Code, ShouldEqual, http.StatusOK)
			So(rr.Body.String(), ShouldContainSubstring, `"token":`)
		})
	})
}
