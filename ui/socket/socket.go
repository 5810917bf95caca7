// Package socket keeps a push channel open to the server and passes the frames it receives to a handler.
package socket

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

type (
	// Socket is a push channel from the server.  It can be connected again after it is closed.
	Socket struct {
		log    Log
		dialer Dialer
		mu     sync.Mutex
		conn   Conn
		done   chan struct{}
		Config
	}

	// Config contains the properties to create a Socket.
	Config struct {
		// Name describes the socket in log messages.
		Name string
		// CloseWait is how long to wait for the server to acknowledge a close before the connection is dropped.
		CloseWait time.Duration
	}

	// Log is used to report unexpected closures and bad frames.
	Log interface {
		Warning(text string)
		Debug(text string)
	}

	// Dialer opens connections to the server.
	Dialer interface {
		// Dial connects to the websocket url.
		Dial(ctx context.Context, url string) (Conn, error)
	}

	// Conn is the connection that backs the socket.
	Conn interface {
		// ReadMessage reads the data of the next frame from the connection.
		ReadMessage() ([]byte, error)
		// WriteClose writes a close message on the connection.  The connection is NOT closed.
		WriteClose(reason string) error
		// Close closes the connection.
		Close() error
		// IsNormalClose determines if the error is from the connection being closed normally.
		IsNormalClose(err error) bool
	}

	// Handler is called with the data of each frame read from the socket.
	Handler func(data []byte)
)

// ErrAlreadyOpen is returned when connecting a socket that is already connected.
var ErrAlreadyOpen = errors.New("socket already open")

// NewSocket creates a socket that is not connected.
func (cfg Config) NewSocket(log Log, dialer Dialer) (*Socket, error) {
	if err := cfg.validate(log, dialer); err != nil {
		return nil, fmt.Errorf("creating socket: validation: %w", err)
	}
	s := Socket{
		log:    log,
		dialer: dialer,
		Config: cfg,
	}
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(log Log, dialer Dialer) error {
	switch {
	case log == nil:
		return fmt.Errorf("log required")
	case dialer == nil:
		return fmt.Errorf("dialer required")
	case len(cfg.Name) == 0:
		return fmt.Errorf("name required")
	case cfg.CloseWait <= 0:
		return fmt.Errorf("positive close wait required")
	}
	return nil
}

// Connect opens the socket and reads frames on a separate goroutine until it is closed.
func (s *Socket) Connect(ctx context.Context, url string, h Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return ErrAlreadyOpen
	}
	conn, err := s.dialer.Dial(ctx, url)
	if err != nil {
		return fmt.Errorf("connecting %v socket: %w", s.Name, err)
	}
	done := make(chan struct{})
	s.conn = conn
	s.done = done
	go s.readMessages(conn, h, done)
	return nil
}

// IsOpen determines if the socket is connected.
func (s *Socket) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Done is closed when the connection stops being read.  It is nil if the socket was never connected.
func (s *Socket) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Close asks the server to close the socket and waits for the close to complete.
// The connection is dropped if the server does not respond in time.
func (s *Socket) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return
	}
	if err := s.conn.WriteClose(""); err != nil {
		s.log.Debug(fmt.Sprintf("writing %v socket close: %v", s.Name, err))
	}
	select {
	case <-s.done: // BLOCKING
	case <-time.After(s.CloseWait):
		s.conn.Close()
		<-s.done
	}
	s.conn = nil
}

// readMessages passes frames to the handler until the connection fails or is closed.
func (s *Socket) readMessages(conn Conn, h Handler, done chan<- struct{}) {
	defer func() {
		conn.Close()
		close(done)
	}()
	for { // BLOCKING
		data, err := conn.ReadMessage()
		if err != nil {
			if !conn.IsNormalClose(err) {
				s.log.Warning(fmt.Sprintf("%v socket closed: %v", s.Name, err))
			}
			return
		}
		h(data)
	}
}
