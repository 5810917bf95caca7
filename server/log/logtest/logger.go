// Package logtest provides loggers that record what the server logs so tests can check it.
package logtest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jacobpatterson1549/codenames/server/log"
)

// DiscardLogger is a Logger that drops every message.
var DiscardLogger log.Logger = discardLogger{}

type discardLogger struct{}

// Printf does nothing.
func (discardLogger) Printf(format string, v ...interface{}) {}

// Logger records each message that is printed.  It is safe to use from multiple goroutines.
type Logger struct {
	mu       sync.RWMutex
	messages []string
}

var _ log.Logger = NewLogger()

// NewLogger creates a Logger with no messages.
func NewLogger() *Logger {
	return new(Logger)
}

// Printf records the formatted message.
func (l *Logger) Printf(format string, v ...interface{}) {
	m := fmt.Sprintf(format, v...)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, m)
}

// Messages is a copy of the recorded messages, in the order they were printed.
func (l *Logger) Messages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	messages := make([]string, len(l.messages))
	copy(messages, l.messages)
	return messages
}

// String joins the recorded messages.
func (l *Logger) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return strings.Join(l.messages, "")
}

// Contains determines if any message has the text.
func (l *Logger) Contains(text string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, m := range l.messages {
		if strings.Contains(m, text) {
			return true
		}
	}
	return false
}

// Empty determines if nothing has been logged.
func (l *Logger) Empty() bool {
	return len(l.String()) == 0
}

// Reset forgets the recorded messages.
func (l *Logger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = nil
}
