// Package log writes messages for the player to read.
package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Log manages messages for the player.
type Log struct {
	mu sync.Mutex
	w  io.Writer
	// TimeFunc is a function which should supply the current time since the unix epoch.
	// This is used for logging message timestamps
	TimeFunc func() int64
	// Verbose causes debug messages to be written.
	Verbose bool
}

// New creates a log that writes to the writer.
func New(w io.Writer, timeFunc func() int64) *Log {
	l := Log{
		w:        w,
		TimeFunc: timeFunc,
	}
	return &l
}

// Info logs an info-styled message.
func (l *Log) Info(text string) {
	l.add("info", text)
}

// Warning logs an warning-styled message.
func (l *Log) Warning(text string) {
	l.add("warning", text)
}

// Error logs an error-styled message.
func (l *Log) Error(text string) {
	l.add("error", text)
}

// Debug logs a message only if the log is verbose.
func (l *Log) Debug(text string) {
	if !l.Verbose {
		return
	}
	l.add("debug", text)
}

// add writes a log line with the specified class.
func (l *Log) add(class, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := time.Unix(l.TimeFunc(), 0).UTC()
	fmt.Fprintf(l.w, "%s : %-7s : %s\n", t.Format("15:04:05"), class, text)
}
