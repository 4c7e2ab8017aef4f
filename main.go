package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/CodedInternet/golinebot/comms"
	"github.com/CodedInternet/golinebot/onboard"
	"github.com/CodedInternet/golinebot/onboard/hardware"
	"github.com/caarlos0/env/v6"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

type EnvConfig struct {
	JWT_ISSUER   string `env:"JWT_ISSUER" envDefault:"DEV"`
	JWT_SECRET   string `env:"JWT_SECRET"`
	DEBUG        bool   `env:"DEBUG" envDefault:"0"`
	SRCDIR       string `env:"SRCDIR" envDefault:"."`
	FIRMATA_PORT string `env:"FIRMATA_PORT" envDefault:"/dev/ttyACM0"`
	Config       onboard.RobotConfig
	Conductor    *comms.Conductor
	Simulated    bool
}

var (
	ENV *EnvConfig
)

func init() {
	ENV = new(EnvConfig)
	if err := env.Parse(ENV); err != nil {
		panic(err)
	}
	ENV.Config = onboard.DefaultConfig()
}

func main() {
	// process flags
	simulated := flag.Bool("sim", false, "Run the robot in simulator mode")
	port := flag.String("port", "0.0.0.0:80", "Specify the ip:port to listen on")
	configFile := flag.String("config", filepath.Join(ENV.SRCDIR, "linebot.yaml"), "Path to the robot config")
	firmataPort := flag.String("firmata", ENV.FIRMATA_PORT, "Serial port of the Firmata board")
	flag.Parse()

	config, err := onboard.LoadConfig(*configFile)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Printf("No config at %s, using the default wiring\n", *configFile)
		config, err = onboard.DefaultConfig(), nil
	}
	if err != nil {
		panic(fmt.Sprintf("Unable to load config: %v", err))
	}
	ENV.Config = config

	ENV.Simulated = *simulated
	robot, closer, err := buildRobot(config, ENV.Simulated, *firmataPort)
	if err != nil {
		panic(fmt.Sprintf("Unable to initialize robot: %v", err))
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ENV.Conductor = comms.NewConductor(robot, nil)
	go ENV.Conductor.Run(ctx)

	// Start an instance of the shell so it can be controlled from the CLI
	shell := NewShell()
	go shell.Start()

	r := NewRouter()

	fmt.Println("Listening on port", *port)
	if err := http.ListenAndServe(*port, r); err != nil {
		log.Fatal(err)
	}
}

// buildRobot brings the robot up on the simulator or a Firmata board.
func buildRobot(config onboard.RobotConfig, simulated bool, port string) (*onboard.Robot, io.Closer, error) {
	if simulated {
		println("Creating simulator")
		robot, driver, err := onboard.NewSimulatedRobot(config)
		return robot, driver, err
	}

	driver, err := hardware.NewFirmataDriver(port)
	if err != nil {
		return nil, nil, err
	}
	robot, err := onboard.NewRobot(config, driver)
	if err != nil {
		driver.Close()
		return nil, nil, err
	}
	return robot, driver, nil
}

// NewRouter builds the API and websocket routes.
func NewRouter() chi.Router {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Recoverer) // make sure this is last

	//---
	// Build the API routes
	//---
	r.Route("/api", func(r chi.Router) {
		// login
		r.Post("/login", Login)

		r.Group(func(r chi.Router) {
			// Seek, verify and validate JWT tokens
			r.Use(ValidateJWT)

			r.Get("/refresh_token", JWTRefresh)
			r.Get("/state", StateHandler)
			r.Get("/motions", MotionsHandler)
			r.Post("/command", CommandHandler)
		})
	})

	// Add websocket routes
	r.Route("/ws", func(r chi.Router) {
		if !ENV.DEBUG {
			r.Use(ValidateJWT)
		} else {
			fmt.Println("Running in debug mode. Authentication disabled.")
		}

		r.Get("/control", ControlHandler)
		r.Get("/terminal", TerminalHandler)
	})

	return r
}
