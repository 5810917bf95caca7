// Package api makes requests to the codenames service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/http"
)

type (
	// Service calls the endpoints of the server.
	Service struct {
		log         Log
		client      http.Client
		baseURL     *url.URL
		mu          sync.RWMutex
		accessToken string
	}

	// Config contains the properties to create a Service.
	Config struct {
		// BaseURL is the scheme and host of the server, such as http://127.0.0.1:8000.
		BaseURL string
	}

	// Log is used to show failures to the player.
	Log interface {
		Error(text string)
	}

	// Identity is what the server assigns a player to act in games.
	Identity struct {
		// PlayerID is the id of the player in games.
		PlayerID game.PlayerID `json:"playerId"`
		// AccessToken authorizes requests made as the player.
		AccessToken string `json:"accessToken"`
	}

	// ResponseError is the text the server responded with when a request was not successful.
	ResponseError struct {
		Code int
		Text string
	}
)

const servicePath = "/service"

// NewService creates a service to call the server.
func (cfg Config) NewService(log Log, client http.Client) (*Service, error) {
	if err := cfg.validate(log, client); err != nil {
		return nil, fmt.Errorf("creating api service: validation: %w", err)
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url scheme must be http or https: %q", cfg.BaseURL)
	}
	s := Service{
		log:     log,
		client:  client,
		baseURL: u,
	}
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(log Log, client http.Client) error {
	switch {
	case log == nil:
		return fmt.Errorf("log required")
	case client == nil:
		return fmt.Errorf("http client required")
	case len(cfg.BaseURL) == 0:
		return fmt.Errorf("base url required")
	}
	return nil
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return e.Text
}

// Games reads all active games.
func (s *Service) Games(ctx context.Context) ([]game.Game, error) {
	var games []game.Game
	if err := s.do(ctx, "GET", "/games", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// PlayerID asks the server to assign an identity.  The access token is used for later requests.
func (s *Service) PlayerID(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := s.do(ctx, "GET", "/getPlayerId", nil, &id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.accessToken = id.AccessToken
	s.mu.Unlock()
	return &id, nil
}

// CreateGame asks the server to open a new game.
func (s *Service) CreateGame(ctx context.Context) (*game.Game, error) {
	var g game.Game
	if err := s.do(ctx, "POST", "/createGame", nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// JoinGame adds the player to the game.
func (s *Service) JoinGame(ctx context.Context, gameID game.ID, playerID game.PlayerID) error {
	return s.do(ctx, "POST", "/joinGame", playerParams(gameID, playerID), nil)
}

// ChangePlayerName renames the player in the game.
func (s *Service) ChangePlayerName(ctx context.Context, gameID game.ID, playerID game.PlayerID, name string) error {
	params := playerParams(gameID, playerID)
	params.Set("playerName", name)
	return s.do(ctx, "POST", "/changePlayerName", params, nil)
}

// BecomeCaptain makes the player the captain of the team the player is on.
func (s *Service) BecomeCaptain(ctx context.Context, gameID game.ID, playerID game.PlayerID) error {
	return s.do(ctx, "POST", "/becomeCaptain", playerParams(gameID, playerID), nil)
}

// JoinTeam moves the player to the team.
func (s *Service) JoinTeam(ctx context.Context, gameID game.ID, playerID game.PlayerID, team game.Team) error {
	params := playerParams(gameID, playerID)
	params.Set("team", string(team))
	return s.do(ctx, "POST", "/joinTeam", params, nil)
}

// StartGame ends team building.
func (s *Service) StartGame(ctx context.Context, gameID game.ID) error {
	params := make(url.Values, 1)
	params.Set("gameId", string(gameID))
	return s.do(ctx, "POST", "/startGame", params, nil)
}

// ProvideWord submits the clue of the captain.
func (s *Service) ProvideWord(ctx context.Context, gameID game.ID, playerID game.PlayerID, word string, wordCount int) error {
	params := playerParams(gameID, playerID)
	params.Set("captainWord", word)
	params.Set("wordCount", strconv.Itoa(wordCount))
	return s.do(ctx, "POST", "/provideWord", params, nil)
}

// ChooseCard reveals the card for the team of the player.
func (s *Service) ChooseCard(ctx context.Context, gameID game.ID, playerID game.PlayerID, cardID game.CardID) error {
	params := playerParams(gameID, playerID)
	params.Set("cardId", string(cardID))
	return s.do(ctx, "POST", "/chooseCard", params, nil)
}

// FinishMove ends the turn of the team of the player.
func (s *Service) FinishMove(ctx context.Context, gameID game.ID, playerID game.PlayerID) error {
	return s.do(ctx, "POST", "/finishMove", playerParams(gameID, playerID), nil)
}

// Results reads the most recently finished games.
func (s *Service) Results(ctx context.Context, limit int) ([]game.Result, error) {
	params := make(url.Values, 1)
	params.Set("limit", strconv.Itoa(limit))
	var results []game.Result
	if err := s.do(ctx, "GET", "/results", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// WebSocketURL creates a websocket url for the service path, changing it's scheme and adding an access_token.
func (s *Service) WebSocketURL(path string, params url.Values) string {
	u := *s.baseURL
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	default:
		u.Scheme = "wss"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + servicePath + path
	if params == nil {
		params = make(url.Values, 1)
	}
	s.mu.RLock()
	if len(s.accessToken) != 0 {
		params.Set("access_token", s.accessToken)
	}
	s.mu.RUnlock()
	u.RawQuery = params.Encode()
	return u.String()
}

// playerParams creates the query parameters to identify the player in the game.
func playerParams(gameID game.ID, playerID game.PlayerID) url.Values {
	params := make(url.Values, 2)
	params.Set("gameId", string(gameID))
	params.Set("playerId", string(playerID))
	return params
}

// do makes the request, decoding the response into dest if it is not nil.
// The response text of failed requests is logged without quotes.
func (s *Service) do(ctx context.Context, method, path string, params url.Values, dest interface{}) error {
	u := *s.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + servicePath + path
	u.RawQuery = params.Encode()
	s.mu.RLock()
	req := http.Request{
		Method:      method,
		URL:         u.String(),
		AccessToken: s.accessToken,
	}
	s.mu.RUnlock()
	resp, err := s.client.Do(ctx, req)
	if err != nil {
		s.log.Error(err.Error())
		return err
	}
	defer resp.Body.Close()
	if resp.Failed() {
		return s.handleResponseError(resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		err = fmt.Errorf("decoding %v response: %w", path, err)
		s.log.Error(err.Error())
		return err
	}
	return nil
}

// handleResponseError logs the text of the failed response.
func (s *Service) handleResponseError(resp *http.Response) error {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("reading response error text: %w", err)
		s.log.Error(err.Error())
		return err
	}
	text := strings.ReplaceAll(string(b), `"`, "")
	text = strings.TrimSpace(text)
	s.log.Error(text)
	return &ResponseError{
		Code: resp.Code,
		Text: text,
	}
}
