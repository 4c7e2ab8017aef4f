package comms

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/CodedInternet/golinebot/onboard"
	"github.com/CodedInternet/golinebot/onboard/hardware"
)

const (
	CMD_QUEUE_SIZE = 32
	SUB_QUEUE_SIZE = 4
)

var (
	ErrQueueFull     = errors.New("command queue is full")
	ErrAutonomous    = errors.New("motion commands are ignored in autonomous mode")
	ErrAlreadyActive = errors.New("conductor is already running")
)

// ConductorInterface is what remote clients need to drive the robot.
type ConductorInterface interface {
	Submit(cmd Cmd) error
	Snapshot() StatePayload
}

// Conductor runs the control loop. It is the only goroutine touching the Robot;
// everyone else talks to it through Submit.
type Conductor struct {
	Robot *onboard.Robot

	logger *log.Logger
	hz     int
	cmds   chan Cmd

	lock     sync.RWMutex
	running  bool
	tick     uint64
	snapshot StatePayload
	subs     map[<-chan StatePayload]chan StatePayload
}

func NewConductor(robot *onboard.Robot, logger *log.Logger) (c *Conductor) {
	if logger == nil {
		logger = log.New(os.Stdout, "[conductor] ", log.Ldate|log.Ltime|log.Lshortfile)
	}

	c = &Conductor{
		Robot:  robot,
		logger: logger,
		hz:     robot.Config().Control.Hz,
		cmds:   make(chan Cmd, CMD_QUEUE_SIZE),
		subs:   make(map[<-chan StatePayload]chan StatePayload),
	}
	c.snapshot = c.capture()

	return
}

// Submit validates cmd and queues it for the next tick. It never blocks.
func (c *Conductor) Submit(cmd Cmd) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	select {
	case c.cmds <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run ticks the control loop until ctx is done, then stops the motors.
func (c *Conductor) Run(ctx context.Context) error {
	c.lock.Lock()
	if c.running {
		c.lock.Unlock()
		return ErrAlreadyActive
	}
	c.running = true
	c.lock.Unlock()

	c.logger.Printf("control loop started at %d Hz", c.hz)

	ticker := time.NewTicker(time.Second / time.Duration(c.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return ctx.Err()
		case <-ticker.C:
			c.step()
		}
	}
}

func (c *Conductor) step() {
	// drain everything queued since the last tick
	for pending := true; pending; {
		select {
		case cmd := <-c.cmds:
			if err := c.ProcessCommand(cmd); err != nil {
				c.logger.Printf("unable to process command %v: %v", cmd, err)
			}
		default:
			pending = false
		}
	}

	if c.Robot.State().Mode == hardware.Autonomous {
		c.followLine()
	}

	if err := c.Robot.Err(); err != nil {
		c.logger.Printf("hardware error: %v", err)
		c.Robot.ResetErr()
	}

	c.publish()
}

// followLine keeps the robot on the edge of the tape with one sensor: pivot left
// while over black, right while over white.
func (c *Conductor) followLine() {
	black, err := c.Robot.SenseLine()
	if err != nil {
		c.logger.Printf("line sensor: %v", err)
		c.Robot.Move(hardware.Stop)
		return
	}

	if black {
		c.Robot.Move(hardware.Left)
	} else {
		c.Robot.Move(hardware.Right)
	}
}

// ProcessCommand applies cmd to the robot. Only the control loop may call it.
func (c *Conductor) ProcessCommand(cmd Cmd) error {
	switch cmd.Cmd {
	case CMD_MOTION:
		motion, err := cmd.Motion()
		if err != nil {
			return err
		}
		if c.Robot.State().Mode == hardware.Autonomous {
			if motion != hardware.Stop {
				return ErrAutonomous
			}
			// stop always wins and hands control back to the operator
			c.Robot.SetMode(hardware.Manual)
		}
		c.Robot.Move(motion)

	case CMD_SPEED:
		c.Robot.SetSpeed(int(cmd.Value))

	case CMD_MODE:
		mode, err := hardware.ParseMode(cmd.Name)
		if err != nil {
			return err
		}
		c.Robot.SetMode(mode)

	case CMD_COLOR:
		if strings.ToLower(cmd.Name) == COLOR_OFF {
			c.Robot.LEDOff()
			break
		}
		color, err := hardware.ParseColor(cmd.Name)
		if err != nil {
			return err
		}
		c.Robot.SetColor(color)

	default:
		return cmd.Validate()
	}

	return nil
}

func (c *Conductor) shutdown() {
	c.Robot.Move(hardware.Stop)
	c.publish()

	c.lock.Lock()
	c.running = false
	c.lock.Unlock()

	c.logger.Println("control loop stopped")
}

func (c *Conductor) capture() StatePayload {
	return StatePayload{
		RobotState: c.Robot.State(),
		Motion:     c.Robot.LastMotion().String(),
		Color:      c.Robot.Color().String(),
	}
}

func (c *Conductor) publish() {
	state := c.capture()

	c.lock.Lock()
	defer c.lock.Unlock()

	c.tick++
	state.Tick = c.tick
	changed := !sameState(state, c.snapshot)
	c.snapshot = state

	if !changed {
		return
	}
	for _, ch := range c.subs {
		select {
		case ch <- state:
		default:
			// slow subscriber, it will catch up on the next change
		}
	}
}

// Snapshot returns the state as of the last tick.
func (c *Conductor) Snapshot() StatePayload {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.snapshot
}

// Subscribe returns a channel receiving every state change.
func (c *Conductor) Subscribe() <-chan StatePayload {
	ch := make(chan StatePayload, SUB_QUEUE_SIZE)

	c.lock.Lock()
	c.subs[ch] = ch
	c.lock.Unlock()

	return ch
}

// Subscribers is the number of open subscriptions.
func (c *Conductor) Subscribers() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return len(c.subs)
}

func (c *Conductor) Unsubscribe(ch <-chan StatePayload) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if sub, ok := c.subs[ch]; ok {
		delete(c.subs, ch)
		close(sub)
	}
}
