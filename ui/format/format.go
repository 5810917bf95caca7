// Package format converts game values to the text shown to players.
package format

import (
	"strconv"
	"time"

	"github.com/jacobpatterson1549/codenames/game"
)

// Highlight is the emphasis of a game in a list.
type Highlight string

const (
	// Information highlights games that can be joined.
	Information Highlight = "Information"
	// Success highlights games that are being played.
	Success Highlight = "Success"
	// Error highlights games that are finished.
	Error Highlight = "Error"
)

// moveSeconds is the length of a move that the timer percent is relative to.
const moveSeconds = 60

// HighlightForState is the emphasis of a game in the state.  Unknown states have no highlight.
func HighlightForState(s game.State) Highlight {
	switch {
	case s == game.TeamBuilding:
		return Information
	case game.InProgressStates.Contains(s):
		return Success
	case s == game.Finished:
		return Error
	}
	return ""
}

// SecondsBefore is the number of whole seconds until the end, plus one, but never negative.
// A missing end is treated as now.
func SecondsBefore(end *time.Time, now time.Time) int {
	e := now
	if end != nil {
		e = *end
	}
	seconds := int(e.Sub(now)/time.Second) + 1
	if seconds < 0 {
		return 0
	}
	return seconds
}

// SecondsBeforePercent is the portion of a minute that SecondsBefore is, as a percent.
func SecondsBeforePercent(end *time.Time, now time.Time) float64 {
	return float64(SecondsBefore(end, now)) / moveSeconds * 100
}

// GameName is the name of the game at the one-based position of a list.
func GameName(position int) string {
	return "Game " + strconv.Itoa(position)
}
