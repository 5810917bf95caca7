package game

type (
	// CardID identifies a card on a board.
	CardID string

	// Card is a codename on the board.
	Card struct {
		// ID is unique among the cards of the game.
		ID CardID `json:"cardId"`
		// Word is the codename.
		Word string `json:"word"`
		// Type is the affiliation of the card.
		Type CardType `json:"type"`
		// Visible is set once the card has been chosen, revealing its type to all players.
		Visible bool `json:"visible"`
	}

	// CardType is the affiliation of a card.
	CardType string
)

const (
	// Assassin ends the game when chosen; the choosing team loses.
	Assassin CardType = "Assassin"
	// RedAgent belongs to the red team.
	RedAgent CardType = "RedAgent"
	// BlueAgent belongs to the blue team.
	BlueAgent CardType = "BlueAgent"
	// InnocentBystander belongs to neither team.
	InnocentBystander CardType = "InnocentBystander"
	// Unknown is displayed for cards the viewer is not allowed to see.
	Unknown CardType = "Unknown"
)

// ShowColor determines if a viewer sees the type of the card.
// Captains see every type.  Other players only see cards that have been chosen.
func (c Card) ShowColor(captain bool) bool {
	return c.Visible || captain
}

// DisplayType is the type the viewer sees.
func (c Card) DisplayType(captain bool) CardType {
	if !c.ShowColor(captain) {
		return Unknown
	}
	return c.Type
}

// Team gets the team the card belongs to, if any.
func (t CardType) Team() Team {
	switch t {
	case RedAgent:
		return RedTeam
	case BlueAgent:
		return BlueTeam
	}
	return ""
}
