// Package gorilla implements a websocket connection by wrapping gorilla/websocket.
package gorilla

import (
	"context"
	"errors"

	"github.com/gorilla/websocket"
	"github.com/jacobpatterson1549/codenames/ui/socket"
)

type (
	// Dialer implements the socket.Dialer interface by wrapping a gorilla/websocket Dialer.
	Dialer struct {
		*websocket.Dialer
	}

	// Conn implements the socket.Conn interface by wrapping a gorilla/websocket Conn.
	Conn struct {
		*websocket.Conn
	}
)

// NewDialer creates a dialer that creates gorilla websocket connections.
func NewDialer() *Dialer {
	d := *websocket.DefaultDialer
	return &Dialer{&d}
}

// Dial connects to the url.
func (d *Dialer) Dial(ctx context.Context, url string) (socket.Conn, error) {
	c, resp, err := d.Dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil && resp.StatusCode >= 400 {
			return nil, errors.New(resp.Status)
		}
		return nil, err
	}
	return &Conn{c}, nil
}

// ReadMessage reads the data of the next text or binary frame.
func (c *Conn) ReadMessage() ([]byte, error) {
	_, data, err := c.Conn.ReadMessage()
	return data, err
}

// WriteClose writes a close message on the connection.  The connection is NOT closed.
func (c *Conn) WriteClose(reason string) error {
	data := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	return c.Conn.WriteMessage(websocket.CloseMessage, data)
}

// IsNormalClose determines if the error message is not an unexpected close error.
func (*Conn) IsNormalClose(err error) bool {
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) { // only errors from gorilla can be normal close errors
		return false
	}
	return !websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
