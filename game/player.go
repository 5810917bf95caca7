package game

type (
	// PlayerID identifies a player across games.
	PlayerID string

	// Player is a member of a game.
	Player struct {
		// ID is the identity the server assigned to the player.
		ID PlayerID `json:"playerId"`
		// Name is the display name of the player.
		Name string `json:"name"`
		// Role is what the player can do for the team.
		Role Role `json:"role"`
		// Team is the side the player is on.  It is empty until the player joins a team.
		Team Team `json:"team,omitempty"`
	}

	// Role is the job of a player on a team.
	Role string

	// Team is a side of the game.
	Team string
)

const (
	// Captain is the role of the player who provides clue words for the team.
	Captain Role = "Captain"
	// Agent is the role of the players who guess cards from the clue words.
	Agent Role = "Agent"
)

const (
	// RedTeam is the team that starts the game.
	RedTeam Team = "RedAgents"
	// BlueTeam is the team that moves second.
	BlueTeam Team = "BlueAgents"
)

// Valid determines if the team is one of the two sides.
func (t Team) Valid() bool {
	return t == RedTeam || t == BlueTeam
}

// Other gets the opposing team.  Teams that are not valid have no opponent.
func (t Team) Other() Team {
	switch t {
	case RedTeam:
		return BlueTeam
	case BlueTeam:
		return RedTeam
	}
	return ""
}

// AgentType is the type of the cards that belong to the team.
func (t Team) AgentType() CardType {
	switch t {
	case RedTeam:
		return RedAgent
	case BlueTeam:
		return BlueAgent
	}
	return Unknown
}
