package game

import "time"

// Result is the record of a finished game.
type Result struct {
	// GameID is the id the game had while it was played.
	GameID ID `json:"gameId" bson:"gameId" firestore:"gameId"`
	// Winner is the team that won.
	Winner Team `json:"winner" bson:"winner" firestore:"winner"`
	// RedPlayers are the names of the players on the red team.
	RedPlayers []string `json:"redPlayers" bson:"redPlayers" firestore:"redPlayers"`
	// BluePlayers are the names of the players on the blue team.
	BluePlayers []string `json:"bluePlayers" bson:"bluePlayers" firestore:"bluePlayers"`
	// FinishedAt is when the game ended.
	FinishedAt time.Time `json:"finishedAt" bson:"finishedAt" firestore:"finishedAt"`
}

// NewResult creates the result of a finished game.
func NewResult(g Game, finishedAt time.Time) Result {
	r := Result{
		GameID:     g.ID,
		Winner:     g.Winner,
		FinishedAt: finishedAt.UTC(),
	}
	for _, p := range g.Players {
		switch p.Team {
		case RedTeam:
			r.RedPlayers = append(r.RedPlayers, p.Name)
		case BlueTeam:
			r.BluePlayers = append(r.BluePlayers, p.Name)
		}
	}
	return r
}
