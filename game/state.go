package game

import "strings"

type (
	// State is the step a game is in.  It is sent as text.
	State string

	// StateSet is a group of states that a view accepts.
	StateSet []State
)

const (
	// TeamBuilding is the state of a game that players can join teams in.
	TeamBuilding State = "TeamBuildingState"
	// RedCaptainThinking is the state when the red captain must provide a clue.
	RedCaptainThinking State = "RedCaptainThinkingState"
	// RedTeamThinking is the state when the red agents choose cards.
	RedTeamThinking State = "RedTeamThinkingState"
	// BlueCaptainThinking is the state when the blue captain must provide a clue.
	BlueCaptainThinking State = "BlueCaptainThinkingState"
	// BlueTeamThinking is the state when the blue agents choose cards.
	BlueTeamThinking State = "BlueTeamThinkingState"
	// Finished is the state of a game that has a winner.
	Finished State = "FinishedGameState"
)

const (
	captainThinkingSuffix = "CaptainThinkingState"
	teamThinkingSuffix    = "TeamThinkingState"
)

var (
	// TeamBuildingStates are accepted by the team building view.
	TeamBuildingStates = StateSet{TeamBuilding}
	// InProgressStates are the states of a game that has started but has not finished.
	InProgressStates = StateSet{RedTeamThinking, RedCaptainThinking, BlueTeamThinking, BlueCaptainThinking}
	// BoardStates are accepted by the game board view.
	BoardStates = StateSet{RedCaptainThinking, RedTeamThinking, BlueCaptainThinking, BlueTeamThinking, Finished}
)

// Contains determines if the state is a member of the set.
func (ss StateSet) Contains(s State) bool {
	for _, s2 := range ss {
		if s == s2 {
			return true
		}
	}
	return false
}

// CaptainThinking determines if a captain must provide a clue word.
func (s State) CaptainThinking() bool {
	return s.Team().Valid() && strings.HasSuffix(string(s), captainThinkingSuffix)
}

// TeamThinking determines if agents are choosing cards.
func (s State) TeamThinking() bool {
	return s.Team().Valid() && strings.HasSuffix(string(s), teamThinkingSuffix)
}

// Team is the team that is moving in the state.
func (s State) Team() Team {
	switch s {
	case RedCaptainThinking, RedTeamThinking:
		return RedTeam
	case BlueCaptainThinking, BlueTeamThinking:
		return BlueTeam
	}
	return ""
}

// CaptainThinkingState gets the state for the captain of the team to provide a clue.
func CaptainThinkingState(t Team) State {
	switch t {
	case RedTeam:
		return RedCaptainThinking
	case BlueTeam:
		return BlueCaptainThinking
	}
	return ""
}

// TeamThinkingState gets the state for the agents of the team to choose cards.
func TeamThinkingState(t Team) State {
	switch t {
	case RedTeam:
		return RedTeamThinking
	case BlueTeam:
		return BlueTeamThinking
	}
	return ""
}
