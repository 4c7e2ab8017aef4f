package main

import (
	"strconv"
	"strings"

	"github.com/CodedInternet/golinebot/comms"
	"github.com/CodedInternet/golinebot/onboard/hardware"
	"github.com/abiosoft/ishell"
)

// submitCmd queues cmd and reports any rejection on the shell.
func submitCmd(c *ishell.Context, cmd comms.Cmd) {
	if err := ENV.Conductor.Submit(cmd); err != nil {
		c.Err(err)
		return
	}
	c.Printf("queued %v\n", cmd)
}

func motionCmd(motion hardware.Motion) *ishell.Cmd {
	name := motion.String()
	return &ishell.Cmd{
		Name: name,
		Help: name,
		Func: func(c *ishell.Context) {
			submitCmd(c, comms.Cmd{Cmd: comms.CMD_MOTION, Name: name})
		},
	}
}

// NewShell builds the local development shell. Every command goes through the
// control loop queue, the same as remote clients.
func NewShell() *ishell.Shell {
	shell := ishell.New()
	shell.Println("Line follower development shell")
	shell.ShowPrompt(true)

	for _, e := range hardware.MotionMap {
		shell.AddCmd(motionCmd(e.Motion))
	}

	shell.AddCmd(&ishell.Cmd{
		Name: "speed",
		Help: "speed <0-255>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("Usage: speed <0-255>")
				return
			}
			speed, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			submitCmd(c, comms.Cmd{Cmd: comms.CMD_SPEED, Value: float64(speed)})
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "mode",
		Help: "mode <manual|auto>",
		Completer: func([]string) []string {
			return []string{hardware.Manual.String(), hardware.Autonomous.String()}
		},
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("Usage: mode <manual|auto>")
				return
			}
			submitCmd(c, comms.Cmd{Cmd: comms.CMD_MODE, Name: c.Args[0]})
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "color",
		Help: "color <red|green|blue|off>",
		Completer: func([]string) []string {
			return []string{
				hardware.Red.String(),
				hardware.Green.String(),
				hardware.Blue.String(),
				comms.COLOR_OFF,
			}
		},
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("Usage: color <red|green|blue|off>")
				return
			}
			submitCmd(c, comms.Cmd{Cmd: comms.CMD_COLOR, Name: c.Args[0]})
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "send",
		Help: "send <line>, e.g. send F or send speed 200",
		Completer: func([]string) []string {
			return hardware.MotionMap.Names()
		},
		Func: func(c *ishell.Context) {
			cmd, err := comms.ParseLine(strings.Join(c.Args, " "))
			if err != nil {
				c.Err(err)
				return
			}
			submitCmd(c, cmd)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "state",
		Help: "Reads the current state of the robot",
		Func: func(c *ishell.Context) {
			s := ENV.Conductor.Snapshot()
			c.Printf("tick %d: mode=%s speed=%d motion=%s line_black=%v led=%s\n",
				s.Tick, s.Mode, s.Speed, s.Motion, s.LineBlack, s.Color)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "motions",
		Help: "Lists the motion table",
		Func: func(c *ishell.Context) {
			for i, name := range hardware.MotionMap.Names() {
				c.Printf("%d\t%s\n", i, name)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "hashpassword",
		Help: "hashpassword <password>, prints a bcrypt hash for the operators list",
		Func: func(c *ishell.Context) {
			c.ShowPrompt(false)
			defer c.ShowPrompt(true)

			var password string
			if len(c.Args) >= 1 {
				password = c.Args[0]
			} else {
				c.Print("Password: ")
				password = c.ReadPassword()
			}

			user := &User{}
			user.SetPassword([]byte(password))
			c.Println(user.Password)
		},
	})

	return shell
}
