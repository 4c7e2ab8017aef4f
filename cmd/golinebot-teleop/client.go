package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/CodedInternet/golinebot/comms"
	"github.com/gorilla/websocket"
)

const CLIENT_QUEUE_SIZE = 16

// Client is one connection to the robot's control socket.
type Client struct {
	conn   *websocket.Conn
	lock   sync.Mutex // guards writes on conn
	states chan comms.StatePayload
	logs   chan string
}

// login exchanges operator credentials for a token.
func login(server, email, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(strings.TrimRight(server, "/")+"/api/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed: %s", resp.Status)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Token, nil
}

// controlURL turns the http server address into the websocket address.
func controlURL(server, token string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/control"
	if token != "" {
		q := u.Query()
		q.Set("jwt", token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func Dial(server, token string) (*Client, error) {
	addr, err := controlURL(server, token)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", server, err)
	}

	c := &Client{
		conn:   conn,
		states: make(chan comms.StatePayload, CLIENT_QUEUE_SIZE),
		logs:   make(chan string, CLIENT_QUEUE_SIZE),
	}
	go c.listen()
	return c, nil
}

func (c *Client) listen() {
	defer close(c.states)
	for {
		var msg comms.ControlMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.log(fmt.Sprintf("connection lost: %v", err))
			return
		}

		if msg.Cmd != nil {
			if msg.Error != "" {
				c.log(fmt.Sprintf("%v: %s", *msg.Cmd, msg.Error))
			}
			continue
		}
		c.states <- msg.StatePayload
	}
}

// log drops the message when nobody is reading.
func (c *Client) log(msg string) {
	select {
	case c.logs <- msg:
	default:
	}
}

func (c *Client) Send(cmd comms.Cmd) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.conn.WriteJSON(cmd)
}

// States is closed when the connection drops.
func (c *Client) States() <-chan comms.StatePayload {
	return c.states
}

func (c *Client) Logs() <-chan string {
	return c.logs
}

func (c *Client) Close() error {
	return c.conn.Close()
}
