package main

import (
	"errors"
	"net/http"

	"github.com/CodedInternet/golinebot/comms"
	"github.com/CodedInternet/golinebot/onboard/hardware"
	"github.com/go-chi/render"
)

// CommandPayload wraps a Cmd for render.Bind.
type CommandPayload struct {
	comms.Cmd
}

func (c *CommandPayload) Bind(r *http.Request) error {
	if c.Cmd.Cmd == "" {
		return errors.New("cmd is required")
	}
	return nil
}

type MotionPayload struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// StateHandler returns the latest control loop snapshot.
func StateHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, ENV.Conductor.Snapshot())
}

// MotionsHandler lists the motion table in dispatch order.
func MotionsHandler(w http.ResponseWriter, r *http.Request) {
	motions := make([]MotionPayload, len(hardware.MotionMap))
	for i, e := range hardware.MotionMap {
		motions[i] = MotionPayload{Index: i, Name: e.Name}
	}
	render.JSON(w, r, motions)
}

// CommandHandler queues one command for the control loop.
func CommandHandler(w http.ResponseWriter, r *http.Request) {
	data := &CommandPayload{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := ENV.Conductor.Submit(data.Cmd); err != nil {
		if err == comms.ErrQueueFull {
			render.Render(w, r, ErrUnavailable(err))
			return
		}
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, data.Cmd)
}
