package socket

import (
	"errors"
	"net"
	"sync"
)

// mockAddr implements the net.Addr interface
type mockAddr string

func (m mockAddr) Network() string {
	return string(m) + "_NETWORK"
}

func (m mockAddr) String() string {
	return string(m)
}

var errMockNormalClose = errors.New("normal close")

// mockConn is a connection that blocks reads until it is closed.
type mockConn struct {
	ReadMessageFunc func() error
	WriteJSONFunc   func(v interface{}) error
	WritePingFunc   func() error
	mu              sync.Mutex
	closeReasons    []string
	closed          chan struct{}
	closeOnce       sync.Once
}

func newMockConn() *mockConn {
	m := mockConn{
		closed: make(chan struct{}),
	}
	m.ReadMessageFunc = func() error {
		<-m.closed
		return errMockNormalClose
	}
	m.WriteJSONFunc = func(v interface{}) error {
		return nil
	}
	m.WritePingFunc = func() error {
		return nil
	}
	return &m
}

func (m *mockConn) ReadMessage() error {
	return m.ReadMessageFunc()
}

func (m *mockConn) WriteJSON(v interface{}) error {
	return m.WriteJSONFunc(v)
}

func (m *mockConn) WritePing() error {
	return m.WritePingFunc()
}

// WriteClose records the reason and acts as if the other end acknowledged the close.
func (m *mockConn) WriteClose(reason string) error {
	m.mu.Lock()
	m.closeReasons = append(m.closeReasons, reason)
	m.mu.Unlock()
	return m.Close()
}

func (m *mockConn) Close() error {
	m.closeOnce.Do(func() {
		close(m.closed)
	})
	return nil
}

func (m *mockConn) IsNormalClose(err error) bool {
	return err == errMockNormalClose
}

func (m *mockConn) RemoteAddr() net.Addr {
	return mockAddr("selene.pc")
}

func (m *mockConn) reasons() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.closeReasons...)
}
