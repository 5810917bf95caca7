// Package log provides an abstraction over log.Logger.
package log

// Logger is an interface over log.Logger to ensure the same log is used in most places rather than the default logger in that package.
type Logger interface {
	// Printf calls writes the formatted string with values to the logger.
	// Arguments are handled in the manner of fmt.Printf.
	Printf(format string, v ...interface{})
}

// Prefixed is a Logger that starts each message with a prefix, such as the name of the component that is logging.
type Prefixed struct {
	Logger
	Prefix string
}

// Printf writes the prefix and the formatted string to the Logger.
func (p Prefixed) Printf(format string, v ...interface{}) {
	p.Logger.Printf("%s"+format, append([]interface{}{p.Prefix}, v...)...)
}
