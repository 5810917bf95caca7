package router

import (
	"testing"

	"github.com/jacobpatterson1549/codenames/game"
)

func TestNavTo(t *testing.T) {
	r := New()
	if want, got := (Location{Route: Lobby}), r.Current(); want != got {
		t.Errorf("wanted new router at %v, got %v", want, got)
	}
	var matched []game.ID
	r.AttachMatched(Game, func(gameID game.ID) {
		matched = append(matched, gameID)
		if want, got := (Location{Route: Game, GameID: gameID}), r.Current(); want != got {
			t.Errorf("wanted current location to be set before listeners: wanted %v, got %v", want, got)
		}
	})
	r.AttachMatched(Lobby, func(gameID game.ID) {
		if len(gameID) != 0 {
			t.Errorf("wanted no game id for lobby, got %v", gameID)
		}
	})
	r.NavTo(Game, "g1")
	r.NavTo(TeamBuilding, "g2")
	r.NavTo(Lobby, "g3")
	r.NavTo(Game, "g4")
	if len(matched) != 2 || matched[0] != "g1" || matched[1] != "g4" {
		t.Errorf("wanted game route matched for g1 and g4, got %v", matched)
	}
	if want, got := (Location{Route: Game, GameID: "g4"}), r.Current(); want != got {
		t.Errorf("wanted %v, got %v", want, got)
	}
}
