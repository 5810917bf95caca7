// Package socket pushes games to players over websocket connections.
package socket

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/server/log"
)

type (
	// Socket writes games to a player and notices when the player disconnects.
	Socket struct {
		log log.Logger
		Conn
		Config
	}

	// Config contains commonly shared Socket properties.
	Config struct {
		// Debug is a flag that causes the socket to log the games that are written.
		Debug bool
		// PingPeriod is how often ping messages should be sent.  Should be less than the read wait of the connection.
		PingPeriod time.Duration
	}

	// Conn is the connection than backs the socket.
	Conn interface {
		// ReadMessage reads and discards the next message from the connection.
		ReadMessage() error
		// WriteJSON writes the value as json to the connection.
		WriteJSON(v interface{}) error
		// WritePing writes a ping message on the connection.
		WritePing() error
		// WriteClose writes a close message on the connection.  The connection is NOT closed.
		WriteClose(reason string) error
		// Close closes the connection.
		Close() error
		// IsNormalClose determines if the error is from the connection being closed normally.
		IsNormalClose(err error) bool
		// RemoteAddr gets the remote network address of the connection.
		RemoteAddr() net.Addr
	}
)

// errSocketClosed is returned by readMessage when the connection was closed normally.
var errSocketClosed = errors.New("socket closed")

// NewSocket creates a socket.
func (cfg Config) NewSocket(log log.Logger, conn Conn) (*Socket, error) {
	if err := cfg.validate(log, conn); err != nil {
		return nil, fmt.Errorf("creating socket: validation: %w", err)
	}
	s := Socket{
		log:    log,
		Conn:   conn,
		Config: cfg,
	}
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(log log.Logger, conn Conn) error {
	switch {
	case log == nil:
		return fmt.Errorf("log required")
	case conn == nil:
		return fmt.Errorf("websocket connection required")
	case cfg.PingPeriod <= 0:
		return fmt.Errorf("positive ping period required")
	}
	return nil
}

// Run writes games from the channel to the connection on one goroutine while reading from it on another to notice when it closes.
// The socket runs until the games channel is closed, the connection fails, or the context is cancelled.
// The returned channel is closed when the connection is closed.
func (s *Socket) Run(ctx context.Context, games <-chan game.Game) <-chan struct{} {
	done := make(chan struct{})
	readDone := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go s.readMessages(readDone, &wg)
	go s.writeMessages(ctx, games, readDone, &wg)
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}

// readMessages reads from the connection until it fails.  Players do not send messages, but reading handles pongs and close messages.
func (s *Socket) readMessages(readDone chan<- struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(readDone)
	for { // BLOCKING
		err := s.readMessage()
		switch {
		case err == errSocketClosed:
			return
		case err != nil:
			s.log.Printf("reading socket messages stopped for %v: %v", s.RemoteAddr(), err)
			return
		}
	}
}

// writeMessages writes games and pings to the connection.
// When writing stops, a close message is written and the connection is closed after the reader stops or a ping period passes.
func (s *Socket) writeMessages(ctx context.Context, games <-chan game.Game, readDone <-chan struct{}, wg *sync.WaitGroup) {
	pingTicker := time.NewTicker(s.PingPeriod)
	var closeReason string
	defer func() {
		pingTicker.Stop()
		s.Conn.WriteClose(closeReason)
		if s.Debug {
			s.log.Printf("socket for %v closing: %v", s.RemoteAddr(), closeReason)
		}
		select {
		case <-readDone:
		case <-time.After(s.PingPeriod):
		}
		s.Conn.Close()
		wg.Done()
	}()
	for { // BLOCKING
		var err error
		select {
		case <-ctx.Done():
			closeReason = "server shutting down"
			return
		case <-readDone:
			closeReason = "player disconnected"
			return
		case g, ok := <-games:
			if !ok {
				closeReason = "channel closed"
				return
			}
			err = s.writeGame(g)
		case <-pingTicker.C:
			err = s.Conn.WritePing()
		}
		if err != nil {
			closeReason = fmt.Sprintf("writing socket messages stopped for %v: %v", s.RemoteAddr(), err)
			s.log.Printf("%v", closeReason)
			return
		}
	}
}

// readMessage reads the next message from the connection.
func (s *Socket) readMessage() error {
	if err := s.Conn.ReadMessage(); err != nil { // BLOCKING
		if s.Conn.IsNormalClose(err) {
			return errSocketClosed
		}
		return fmt.Errorf("unexpected socket closure: %w", err)
	}
	return nil
}

// writeGame writes a game to the connection.
func (s *Socket) writeGame(g game.Game) error {
	if s.Debug {
		s.log.Printf("socket writing game %v with state %v to %v", g.ID, g.State, s.RemoteAddr())
	}
	if err := s.Conn.WriteJSON(g); err != nil {
		return fmt.Errorf("writing game: %w", err)
	}
	return nil
}
