// Package db stores the results of finished games so they can be read after the server restarts.
package db

import "time"

// Config contains common database properties.
type Config struct {
	// QueryPeriod is the amount of time that any database action can take before it should timeout.
	QueryPeriod time.Duration
}
