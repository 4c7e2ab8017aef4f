package main

import (
	"log"
	"net"
	"net/http"
	"os"

	"github.com/CodedInternet/golinebot/comms"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var controlLogger = log.New(os.Stdout, "[control] ", log.Ldate|log.Ltime|log.Lshortfile)

// controlConn is the part of a websocket connection the control session uses.
type controlConn interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
	Close() error
	RemoteAddr() net.Addr
}

// ControlHandler streams state snapshots to the client and queues the commands
// it sends. Every client shares the single control loop.
func ControlHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		controlLogger.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	serveControl(conn)
}

// serveControl runs one control session until either direction fails.
func serveControl(conn controlConn) {
	states := ENV.Conductor.Subscribe()
	defer ENV.Conductor.Unsubscribe(states)

	replies := make(chan comms.ControlReply, 1)
	done := make(chan struct{})
	writerDone := make(chan struct{})
	defer close(done)

	// single writer: gorilla connections allow one concurrent writer
	go func() {
		defer close(writerDone)

		err := conn.WriteJSON(ENV.Conductor.Snapshot())
		for err == nil {
			select {
			case <-done:
				return
			case state, ok := <-states:
				if !ok {
					return
				}
				err = conn.WriteJSON(state)
			case reply := <-replies:
				err = conn.WriteJSON(reply)
			}
		}

		controlLogger.Printf("[%s][error] failed to send JSON, because %v", conn.RemoteAddr(), err)
		// unblocks the reader
		conn.Close()
	}()

	for {
		var cmd comms.Cmd
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				controlLogger.Println("read:", err)
			}
			return
		}

		reply := comms.ControlReply{Cmd: cmd}
		if err := ENV.Conductor.Submit(cmd); err != nil {
			controlLogger.Printf("[%s][recv] %v rejected: %v", conn.RemoteAddr(), cmd, err)
			reply.Error = err.Error()
		}

		select {
		case replies <- reply:
		case <-writerDone:
			return
		}
	}
}

// TerminalHandler speaks the text line protocol of the serial/BLE terminal, one
// command per text frame. Each frame is answered with "ok" or the error.
func TerminalHandler(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		controlLogger.Print("upgrade:", err)
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				controlLogger.Println("read:", err)
			}
			break
		}
		controlLogger.Printf("[%s][recv] %s", c.RemoteAddr(), message)

		reply := "ok"
		cmd, err := comms.ParseLine(string(message))
		if err == nil {
			err = ENV.Conductor.Submit(cmd)
		}
		if err != nil {
			reply = err.Error()
		}

		if err = c.WriteMessage(mt, []byte(reply)); err != nil {
			controlLogger.Println("write:", err)
			break
		}
	}
}
