package api

import (
	"context"
	"errors"
	"io"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/http"
)

var noErrorLog = mockLog{
	ErrorFunc: func(text string) {},
}

func newResponse(code int, body string) *http.Response {
	return &http.Response{
		Code: code,
		Body: io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewService(t *testing.T) {
	client := mockHTTPClient{}
	newServiceTests := []struct {
		Config
		log    Log
		client http.Client
		wantOk bool
	}{
		{}, // no log
		{ // no client
			log: noErrorLog,
		},
		{ // no base url
			log:    noErrorLog,
			client: client,
		},
		{ // bad scheme
			Config: Config{BaseURL: "ftp://example.com"},
			log:    noErrorLog,
			client: client,
		},
		{
			Config: Config{BaseURL: "http://127.0.0.1:8000"},
			log:    noErrorLog,
			client: client,
			wantOk: true,
		},
	}
	for i, test := range newServiceTests {
		s, err := test.Config.NewService(test.log, test.client)
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case s == nil:
			t.Errorf("Test %v: wanted service", i)
		}
	}
}

func newTestService(t *testing.T, log Log, doFunc func(ctx context.Context, req http.Request) (*http.Response, error)) *Service {
	t.Helper()
	cfg := Config{
		BaseURL: "http://example.com",
	}
	s, err := cfg.NewService(log, mockHTTPClient{DoFunc: doFunc})
	if err != nil {
		t.Fatalf("creating service: %v", err)
	}
	return s
}

func TestGames(t *testing.T) {
	s := newTestService(t, noErrorLog, func(ctx context.Context, req http.Request) (*http.Response, error) {
		if want, got := "http://example.com/service/games", req.URL; want != got {
			t.Errorf("wanted url %v, got %v", want, got)
		}
		if want, got := "GET", req.Method; want != got {
			t.Errorf("wanted method %v, got %v", want, got)
		}
		return newResponse(200, `[{"gameId":"a","state":"TeamBuildingState","players":[]},{"gameId":"b","state":"FinishedGameState","players":[]}]`), nil
	})
	got, err := s.Games(context.Background())
	want := []game.Game{
		{ID: "a", State: game.TeamBuilding, Players: []game.Player{}},
		{ID: "b", State: game.Finished, Players: []game.Player{}},
	}
	switch {
	case err != nil:
		t.Errorf("unwanted error: %v", err)
	case !reflect.DeepEqual(want, got):
		t.Errorf("\nwanted: %v\ngot:    %v", want, got)
	}
}

func TestPlayerIDAuthorizesLaterRequests(t *testing.T) {
	var requests []http.Request
	s := newTestService(t, noErrorLog, func(ctx context.Context, req http.Request) (*http.Response, error) {
		requests = append(requests, req)
		if strings.HasSuffix(req.URL, "/getPlayerId") {
			return newResponse(200, `{"playerId":"p1","accessToken":"t0k3n"}`), nil
		}
		return newResponse(200, ""), nil
	})
	ctx := context.Background()
	id, err := s.PlayerID(ctx)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if want, got := (Identity{PlayerID: "p1", AccessToken: "t0k3n"}), *id; want != got {
		t.Errorf("wanted identity %v, got %v", want, got)
	}
	if err := s.JoinTeam(ctx, "g1", id.PlayerID, game.BlueTeam); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	req := requests[1]
	u, err := url.Parse(req.URL)
	if err != nil {
		t.Fatalf("parsing request url: %v", err)
	}
	q := u.Query()
	switch {
	case req.Method != "POST":
		t.Errorf("wanted POST, got %v", req.Method)
	case u.Path != "/service/joinTeam":
		t.Errorf("wanted joinTeam path, got %v", u.Path)
	case q.Get("gameId") != "g1", q.Get("playerId") != "p1", q.Get("team") != "BlueAgents":
		t.Errorf("unwanted query: %v", q)
	case req.AccessToken != "t0k3n":
		t.Errorf("wanted access token, got %q", req.AccessToken)
	}
	if len(requests[0].AccessToken) != 0 {
		t.Errorf("wanted no authorization before the identity is known")
	}
}

func TestRequestParams(t *testing.T) {
	ctx := context.Background()
	paramsTests := []struct {
		call     func(s *Service) error
		wantPath string
		want     url.Values
	}{
		{
			call:     func(s *Service) error { return s.JoinGame(ctx, "g", "p") },
			wantPath: "/service/joinGame",
			want:     url.Values{"gameId": {"g"}, "playerId": {"p"}},
		},
		{
			call:     func(s *Service) error { return s.ChangePlayerName(ctx, "g", "p", "selene") },
			wantPath: "/service/changePlayerName",
			want:     url.Values{"gameId": {"g"}, "playerId": {"p"}, "playerName": {"selene"}},
		},
		{
			call:     func(s *Service) error { return s.BecomeCaptain(ctx, "g", "p") },
			wantPath: "/service/becomeCaptain",
			want:     url.Values{"gameId": {"g"}, "playerId": {"p"}},
		},
		{
			call:     func(s *Service) error { return s.StartGame(ctx, "g") },
			wantPath: "/service/startGame",
			want:     url.Values{"gameId": {"g"}},
		},
		{
			call:     func(s *Service) error { return s.ProvideWord(ctx, "g", "p", "space", 2) },
			wantPath: "/service/provideWord",
			want:     url.Values{"gameId": {"g"}, "playerId": {"p"}, "captainWord": {"space"}, "wordCount": {"2"}},
		},
		{
			call:     func(s *Service) error { return s.ChooseCard(ctx, "g", "p", "c7") },
			wantPath: "/service/chooseCard",
			want:     url.Values{"gameId": {"g"}, "playerId": {"p"}, "cardId": {"c7"}},
		},
		{
			call:     func(s *Service) error { return s.FinishMove(ctx, "g", "p") },
			wantPath: "/service/finishMove",
			want:     url.Values{"gameId": {"g"}, "playerId": {"p"}},
		},
	}
	for i, test := range paramsTests {
		var got http.Request
		s := newTestService(t, noErrorLog, func(ctx context.Context, req http.Request) (*http.Response, error) {
			got = req
			return newResponse(200, ""), nil
		})
		if err := test.call(s); err != nil {
			t.Errorf("Test %v: unwanted error: %v", i, err)
			continue
		}
		u, err := url.Parse(got.URL)
		switch {
		case err != nil:
			t.Errorf("Test %v: parsing url: %v", i, err)
		case got.Method != "POST":
			t.Errorf("Test %v: wanted POST, got %v", i, got.Method)
		case test.wantPath != u.Path:
			t.Errorf("Test %v: wanted path %v, got %v", i, test.wantPath, u.Path)
		case !reflect.DeepEqual(test.want, u.Query()):
			t.Errorf("Test %v: query params not equal:\nwanted: %v\ngot:    %v", i, test.want, u.Query())
		}
	}
}

func TestResponseError(t *testing.T) {
	responseErrorTests := []struct {
		resp     *http.Response
		doErr    error
		wantText string
	}{
		{
			resp:     newResponse(400, `"only the captain can provide a word"`),
			wantText: "only the captain can provide a word",
		},
		{
			resp:     newResponse(404, "game not found\n"),
			wantText: "game not found",
		},
		{
			doErr:    errors.New("connection refused"),
			wantText: "connection refused",
		},
	}
	for i, test := range responseErrorTests {
		var logged string
		log := mockLog{
			ErrorFunc: func(text string) {
				logged = text
			},
		}
		s := newTestService(t, log, func(ctx context.Context, req http.Request) (*http.Response, error) {
			return test.resp, test.doErr
		})
		err := s.FinishMove(context.Background(), "g", "p")
		switch {
		case err == nil:
			t.Errorf("Test %v: wanted error", i)
		case test.wantText != logged:
			t.Errorf("Test %v: wanted logged text %q, got %q", i, test.wantText, logged)
		case test.wantText != err.Error():
			t.Errorf("Test %v: wanted error text %q, got %q", i, test.wantText, err.Error())
		}
		if test.resp != nil {
			var re *ResponseError
			if !errors.As(err, &re) || re.Code != test.resp.Code {
				t.Errorf("Test %v: wanted response error with code %v, got %v", i, test.resp.Code, err)
			}
		}
	}
}

func TestWebSocketURL(t *testing.T) {
	webSocketURLTests := []struct {
		baseURL     string
		accessToken string
		params      url.Values
		want        string
	}{
		{
			baseURL: "http://127.0.0.1:8000",
			want:    "ws://127.0.0.1:8000/service/listenToGames",
		},
		{
			baseURL:     "https://example.com/",
			accessToken: "abc",
			params:      url.Values{"gameId": {"g"}, "playerId": {"p"}},
			want:        "wss://example.com/service/listenToGames?access_token=abc&gameId=g&playerId=p",
		},
	}
	for i, test := range webSocketURLTests {
		cfg := Config{
			BaseURL: test.baseURL,
		}
		s, err := cfg.NewService(noErrorLog, mockHTTPClient{})
		if err != nil {
			t.Errorf("Test %v: unwanted error: %v", i, err)
			continue
		}
		s.accessToken = test.accessToken
		if got := s.WebSocketURL("/listenToGames", test.params); test.want != got {
			t.Errorf("Test %v:\nwanted: %v\ngot:    %v", i, test.want, got)
		}
	}
}
