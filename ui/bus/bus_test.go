package bus

import (
	"reflect"
	"testing"

	"github.com/jacobpatterson1549/codenames/game"
)

func TestPublish(t *testing.T) {
	b := New()
	var got []string
	unsubscribeA := b.Subscribe(GameUpdated, func(g game.Game) {
		got = append(got, "a:"+string(g.ID))
	})
	b.Subscribe(GameUpdated, func(g game.Game) {
		got = append(got, "b:"+string(g.ID))
	})
	b.Subscribe("other", func(g game.Game) {
		t.Errorf("handler for other topic called")
	})
	b.Publish(GameUpdated, game.Game{ID: "1"})
	unsubscribeA()
	unsubscribeA() // NOOP
	b.Publish(GameUpdated, game.Game{ID: "2"})
	want := []string{"a:1", "b:1", "b:2"}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("\nwanted: %v\ngot:    %v", want, got)
	}
}

func TestPublishCopiesGame(t *testing.T) {
	b := New()
	b.Subscribe(GameUpdated, func(g game.Game) {
		g.Players[0].Name = "changed"
	})
	g := game.Game{
		Players: []game.Player{{Name: "selene"}},
	}
	b.Publish(GameUpdated, g)
	if want, got := "selene", g.Players[0].Name; want != got {
		t.Errorf("wanted published game to be unchanged: wanted %v, got %v", want, got)
	}
}
