// Package gorilla implements a websocket connection by wrapping gorilla/websocket.
package gorilla

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type (
	// Upgrader implements the socket.Upgrader interface by wrapping a gorilla/websocket Upgrader.
	Upgrader struct {
		*websocket.Upgrader
		// ReadWait is the amount of time that can pass between pongs from the player before the connection fails.
		ReadWait time.Duration
		// WriteWait is the amount of time that the connection can take to write a message.
		WriteWait time.Duration
	}

	// Conn implements the socket.Conn interface by wrapping a gorilla/websocket Conn.
	Conn struct {
		*websocket.Conn
		readWait  time.Duration
		writeWait time.Duration
	}
)

// NewUpgrader returns a upgrader that creates gorilla websocket connections.
func NewUpgrader(readWait, writeWait time.Duration) *Upgrader {
	u := new(websocket.Upgrader)
	return &Upgrader{
		Upgrader:  u,
		ReadWait:  readWait,
		WriteWait: writeWait,
	}
}

// Upgrade creates a Conn from the http request.
// The read deadline of the connection is extended each time a pong is received.
func (u *Upgrader) Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	c, err := u.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	conn := Conn{
		Conn:      c,
		readWait:  u.ReadWait,
		writeWait: u.WriteWait,
	}
	if err := conn.extendReadDeadline(); err != nil {
		c.Close()
		return nil, err
	}
	c.SetPongHandler(func(string) error {
		return conn.extendReadDeadline()
	})
	return &conn, nil
}

// ReadMessage reads and discards the next message from the connection.
func (c *Conn) ReadMessage() error {
	_, _, err := c.Conn.ReadMessage()
	return err
}

// WriteJSON writes the value as json to the connection.
func (c *Conn) WriteJSON(v interface{}) error {
	if err := c.extendWriteDeadline(); err != nil {
		return err
	}
	return c.Conn.WriteJSON(v)
}

// WritePing writes a ping message on the connection.
func (c *Conn) WritePing() error {
	if err := c.extendWriteDeadline(); err != nil {
		return err
	}
	return c.Conn.WriteMessage(websocket.PingMessage, nil)
}

// WriteClose writes a close message on the connection.  The connection is NOT closed.
func (c *Conn) WriteClose(reason string) error {
	data := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	return c.Conn.WriteControl(websocket.CloseMessage, data, time.Now().Add(c.writeWait))
}

// IsNormalClose determines if the error message is not an unexpected close error.
func (*Conn) IsNormalClose(err error) bool {
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) { // only errors from gorilla can be normal close errors
		return false
	}
	return !websocket.IsUnexpectedCloseError(closeErr, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}

func (c *Conn) extendReadDeadline() error {
	return c.Conn.SetReadDeadline(time.Now().Add(c.readWait))
}

func (c *Conn) extendWriteDeadline() error {
	return c.Conn.SetWriteDeadline(time.Now().Add(c.writeWait))
}
