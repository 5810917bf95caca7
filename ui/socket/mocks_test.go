package socket

import (
	"context"
	"errors"
	"sync"
)

var errNormalClose = errors.New("normal close")

type mockLog struct {
	mu       sync.Mutex
	warnings []string
}

func (m *mockLog) Warning(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, text)
}

func (m *mockLog) Debug(text string) {}

func (m *mockLog) Warnings() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.warnings...)
}

type mockDialer struct {
	DialFunc func(ctx context.Context, url string) (Conn, error)
}

func (m mockDialer) Dial(ctx context.Context, url string) (Conn, error) {
	return m.DialFunc(ctx, url)
}

// mockConn reads frames from a channel.  Writing a close closes the channel, like a server acknowledging the close.
type mockConn struct {
	frames       chan []byte
	closeOnce    sync.Once
	readErr      error
	ignoreClose  bool
	mu           sync.Mutex
	closeWritten bool
	closed       bool
}

func newMockConn() *mockConn {
	return &mockConn{
		frames:  make(chan []byte),
		readErr: errNormalClose,
	}
}

func (m *mockConn) ReadMessage() ([]byte, error) {
	data, ok := <-m.frames
	if !ok {
		return nil, m.readErr
	}
	return data, nil
}

func (m *mockConn) WriteClose(reason string) error {
	m.mu.Lock()
	m.closeWritten = true
	m.mu.Unlock()
	if !m.ignoreClose {
		m.closeOnce.Do(func() { close(m.frames) })
	}
	return nil
}

func (m *mockConn) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.closeOnce.Do(func() { close(m.frames) })
	return nil
}

func (m *mockConn) IsNormalClose(err error) bool {
	return err == errNormalClose
}

func (m *mockConn) state() (closeWritten, closed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeWritten, m.closed
}
