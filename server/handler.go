package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/jacobpatterson1549/codenames/game"
	serverGame "github.com/jacobpatterson1549/codenames/server/game"
	"github.com/jacobpatterson1549/codenames/server/log"
	"github.com/jacobpatterson1549/codenames/server/socket"
	"github.com/jacobpatterson1549/codenames/server/socket/gorilla"
)

type (
	// Parameters contains the interfaces needed to create a new server.
	Parameters struct {
		log.Logger
		Tokenizer
		Games   GameManager
		Lobby   Lobby
		Results ResultDao
		*gorilla.Upgrader
	}

	// Tokenizer creates and reads access tokens for players.
	Tokenizer interface {
		Create(playerID game.PlayerID) (string, error)
		ReadPlayerID(tokenString string) (game.PlayerID, error)
	}

	// GameManager changes games by the rules.
	GameManager interface {
		Games() []game.Game
		Game(id game.ID) (*game.Game, error)
		Create() (*game.Game, error)
		Join(id game.ID, playerID game.PlayerID) error
		Leave(id game.ID, playerID game.PlayerID) error
		ChangePlayerName(id game.ID, playerID game.PlayerID, name string) error
		JoinTeam(id game.ID, playerID game.PlayerID, t game.Team) error
		BecomeCaptain(id game.ID, playerID game.PlayerID) error
		Start(id game.ID) error
		ProvideWord(id game.ID, playerID game.PlayerID, word string, wordCount int) error
		ChooseCard(ctx context.Context, id game.ID, playerID game.PlayerID, cardID game.CardID) error
		FinishMove(id game.ID, playerID game.PlayerID) error
	}

	// Lobby creates channels of changed games.
	Lobby interface {
		ListenToGames(ctx context.Context) (<-chan game.Game, error)
		ListenToGame(ctx context.Context, id game.ID) (<-chan game.Game, error)
	}

	// ResultDao reads the results of finished games.
	ResultDao interface {
		Results(ctx context.Context, limit int) ([]game.Result, error)
	}

	// identity is the response to a request for a player id.
	identity struct {
		PlayerID    game.PlayerID `json:"playerId"`
		AccessToken string        `json:"accessToken"`
	}

	// playerAction changes the game for the player with the query of the request.
	playerAction func(r *http.Request, id game.ID, playerID game.PlayerID) error
)

const (
	// HeaderContentType is used to set the document type header on http responses.
	HeaderContentType = "Content-Type"
	// HeaderAuthorization contains the access token of requests made by players.
	HeaderAuthorization = "Authorization"
	// servicePath is the prefix of every endpoint.
	servicePath = "/service"
	// accessTokenParam is the query parameter with the access token of websocket requests.
	accessTokenParam = "access_token"
	// qrSize is the width and height of join link images.
	qrSize = 320
)

// validate ensures that all of the parameters are present.
func (p Parameters) validate() error {
	switch {
	case p.Logger == nil:
		return fmt.Errorf("log required")
	case p.Tokenizer == nil:
		return fmt.Errorf("tokenizer required")
	case p.Games == nil:
		return fmt.Errorf("game manager required")
	case p.Lobby == nil:
		return fmt.Errorf("lobby required")
	case p.Results == nil:
		return fmt.Errorf("result dao required")
	case p.Upgrader == nil:
		return fmt.Errorf("websocket upgrader required")
	}
	return nil
}

// handler creates the router for the endpoints of the service.
func (cfg Config) handler(ctx context.Context, p Parameters) http.Handler {
	auth := func(h httprouter.Handle) httprouter.Handle {
		return authHandler(h, p.Tokenizer, p.Logger)
	}
	action := func(a playerAction) httprouter.Handle {
		return auth(playerActionHandler(a, p.Logger))
	}
	socketCfg := socket.Config{
		Debug:      cfg.Debug,
		PingPeriod: cfg.PingPeriod,
	}
	socketLog := log.Prefixed{
		Logger: p.Logger,
		Prefix: "socket: ",
	}
	games := p.Games
	router := httprouter.New()
	router.GET("/", rootHandler)
	router.GET("/monitor", cfg.monitorHandler)
	router.GET(servicePath+"/games", gamesHandler(games, p.Logger))
	router.GET(servicePath+"/getPlayerId", playerIDHandler(cfg.PlayerIDFunc, p.Tokenizer, p.Logger))
	router.POST(servicePath+"/createGame", createGameHandler(games, p.Logger))
	router.POST(servicePath+"/joinGame", action(func(r *http.Request, id game.ID, playerID game.PlayerID) error {
		return games.Join(id, playerID)
	}))
	router.POST(servicePath+"/changePlayerName", action(func(r *http.Request, id game.ID, playerID game.PlayerID) error {
		return games.ChangePlayerName(id, playerID, r.URL.Query().Get("playerName"))
	}))
	router.POST(servicePath+"/becomeCaptain", action(func(r *http.Request, id game.ID, playerID game.PlayerID) error {
		return games.BecomeCaptain(id, playerID)
	}))
	router.POST(servicePath+"/joinTeam", action(func(r *http.Request, id game.ID, playerID game.PlayerID) error {
		t := game.Team(r.URL.Query().Get("team"))
		return games.JoinTeam(id, playerID, t)
	}))
	router.POST(servicePath+"/startGame", startGameHandler(games, p.Logger))
	router.POST(servicePath+"/provideWord", action(func(r *http.Request, id game.ID, playerID game.PlayerID) error {
		q := r.URL.Query()
		wordCount, err := strconv.Atoi(q.Get("wordCount"))
		if err != nil {
			return fmt.Errorf("%w: word count: %v", serverGame.ErrInvalid, err)
		}
		return games.ProvideWord(id, playerID, q.Get("captainWord"), wordCount)
	}))
	router.POST(servicePath+"/chooseCard", action(func(r *http.Request, id game.ID, playerID game.PlayerID) error {
		cardID := game.CardID(r.URL.Query().Get("cardId"))
		return games.ChooseCard(r.Context(), id, playerID, cardID)
	}))
	router.POST(servicePath+"/finishMove", action(func(r *http.Request, id game.ID, playerID game.PlayerID) error {
		return games.FinishMove(id, playerID)
	}))
	router.GET(servicePath+"/results", resultsHandler(p.Results, cfg.MaxResults, p.Logger))
	router.GET(servicePath+"/qr", qrHandler(games, p.Logger))
	router.GET(servicePath+"/listenToGames", listenToGamesHandler(ctx, p.Lobby, p.Upgrader, socketCfg, socketLog))
	router.GET(servicePath+"/joinGame/listen", joinGameListenHandler(ctx, p, socketCfg, socketLog))
	return router
}

// rootHandler describes how to play.
func rootHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set(HeaderContentType, "text/plain; charset=utf-8")
	fmt.Fprintf(w, "codenames server\nconnect with: ui --server %v\n", baseURL(r))
}

// gamesHandler writes the active games.
func gamesHandler(games GameManager, log log.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, games.Games(), log)
	}
}

// playerIDHandler assigns the player an identity and an access token for it.
func playerIDHandler(idFunc func() string, tokenizer Tokenizer, log log.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		playerID := game.PlayerID(idFunc())
		token, err := tokenizer.Create(playerID)
		if err != nil {
			writeInternalError(fmt.Errorf("creating access token: %w", err), log, w)
			return
		}
		id := identity{
			PlayerID:    playerID,
			AccessToken: token,
		}
		writeJSON(w, id, log)
	}
}

// createGameHandler creates a game.  Listeners to the lobby are notified of the new game.
func createGameHandler(games GameManager, log log.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		g, err := games.Create()
		if err != nil {
			writeGameError(w, err, log)
			return
		}
		writeJSON(w, g, log)
	}
}

// startGameHandler starts the game.  Any player can start a game.
func startGameHandler(games GameManager, log log.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id := game.ID(r.URL.Query().Get("gameId"))
		if err := games.Start(id); err != nil {
			writeGameError(w, err, log)
		}
	}
}

// playerActionHandler runs the action with the game and player ids of the request.
func playerActionHandler(a playerAction, log log.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		q := r.URL.Query()
		id := game.ID(q.Get("gameId"))
		playerID := game.PlayerID(q.Get("playerId"))
		if err := a(r, id, playerID); err != nil {
			writeGameError(w, err, log)
		}
	}
}

// resultsHandler writes the most recently finished games.
func resultsHandler(results ResultDao, maxResults int, log log.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		limit := maxResults
		if s := r.URL.Query().Get("limit"); len(s) != 0 {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				http.Error(w, "limit must be a positive number", http.StatusBadRequest)
				return
			}
			if n < limit {
				limit = n
			}
		}
		rs, err := results.Results(r.Context(), limit)
		if err != nil {
			writeInternalError(fmt.Errorf("reading results: %w", err), log, w)
			return
		}
		if rs == nil {
			rs = []game.Result{}
		}
		writeJSON(w, rs, log)
	}
}

// qrHandler writes a PNG image of the link to join the game.
func qrHandler(games GameManager, log log.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id := game.ID(r.URL.Query().Get("gameId"))
		if _, err := games.Game(id); err != nil {
			writeGameError(w, err, log)
			return
		}
		q := make(url.Values, 1)
		q.Set("gameId", string(id))
		link := baseURL(r) + "/?" + q.Encode()
		png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
		if err != nil {
			writeInternalError(fmt.Errorf("creating qr code: %w", err), log, w)
			return
		}
		w.Header().Set(HeaderContentType, "image/png")
		w.Write(png)
	}
}

// listenToGamesHandler pushes every changed game to the player over a websocket.
func listenToGamesHandler(ctx context.Context, lobby Lobby, upgrader *gorilla.Upgrader, socketCfg socket.Config, log log.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := socketContext(ctx, r)
		defer cancel()
		games, err := lobby.ListenToGames(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		runSocket(ctx, w, r, games, upgrader, socketCfg, log) // BLOCKING
	}
}

// joinGameListenHandler pushes changes of the joined game to the player over a websocket.
// The player leaves the game when the websocket closes.
func joinGameListenHandler(ctx context.Context, p Parameters, socketCfg socket.Config, log log.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		q := r.URL.Query()
		id := game.ID(q.Get("gameId"))
		playerID := game.PlayerID(q.Get("playerId"))
		if err := checkPlayerID(q.Get(accessTokenParam), playerID, p.Tokenizer); err != nil {
			p.Logger.Printf("%v", err)
			httpError(w, http.StatusForbidden)
			return
		}
		g, err := p.Games.Game(id)
		if err != nil {
			writeGameError(w, err, p.Logger)
			return
		}
		if _, ok := g.Player(playerID); !ok {
			writeGameError(w, serverGame.ErrPlayerNotFound, p.Logger)
			return
		}
		ctx, cancel := socketContext(ctx, r)
		defer cancel()
		games, err := p.Lobby.ListenToGame(ctx, id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		runSocket(ctx, w, r, games, p.Upgrader, socketCfg, log) // BLOCKING
		if err := p.Games.Leave(id, playerID); err != nil && !errors.Is(err, serverGame.ErrGameNotFound) {
			p.Logger.Printf("removing %v from game %v: %v", playerID, id, err)
		}
	}
}

// socketContext creates a context that is done when the request is done or the server shuts down.
func socketContext(serverCtx context.Context, r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(r.Context())
	stop := context.AfterFunc(serverCtx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// runSocket upgrades the request to a websocket and writes the games to it until the socket closes.
func runSocket(ctx context.Context, w http.ResponseWriter, r *http.Request, games <-chan game.Game, upgrader *gorilla.Upgrader, socketCfg socket.Config, log log.Logger) {
	conn, err := upgrader.Upgrade(w, r)
	if err != nil {
		log.Printf("upgrading to websocket connection: %v", err) // the upgrader writes the error response
		return
	}
	s, err := socketCfg.NewSocket(log, conn)
	if err != nil {
		log.Printf("%v", err)
		conn.Close()
		return
	}
	<-s.Run(ctx, games) // BLOCKING
}

// authHandler checks the access token of the request belongs to the player in the query before running the child handler.
func authHandler(h httprouter.Handle, tokenizer Tokenizer, log log.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		playerID := game.PlayerID(r.URL.Query().Get("playerId"))
		authorization := r.Header.Get(HeaderAuthorization)
		if len(authorization) < 7 || authorization[:7] != "Bearer " {
			log.Printf("invalid authorization header: %q", authorization)
			httpError(w, http.StatusForbidden)
			return
		}
		if err := checkPlayerID(authorization[7:], playerID, tokenizer); err != nil {
			log.Printf("%v", err)
			httpError(w, http.StatusForbidden)
			return
		}
		h(w, r, ps)
	}
}

// checkPlayerID ensures the token was created for the player.
func checkPlayerID(tokenString string, playerID game.PlayerID, tokenizer Tokenizer) error {
	tokenPlayerID, err := tokenizer.ReadPlayerID(tokenString)
	if err != nil {
		return fmt.Errorf("reading access token: %w", err)
	}
	if tokenPlayerID != playerID {
		return fmt.Errorf("player id not same as token player id")
	}
	return nil
}

// baseURL is the scheme and host of the request.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); len(proto) != 0 {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

// writeJSON writes the value as json.
func writeJSON(w http.ResponseWriter, v interface{}, log log.Logger) {
	w.Header().Set(HeaderContentType, "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing json response: %v", err)
	}
}

// writeGameError writes the text of the error with a status code for the kind of rule that was broken.
func writeGameError(w http.ResponseWriter, err error, log log.Logger) {
	statusCode := http.StatusBadRequest
	switch {
	case errors.Is(err, serverGame.ErrGameNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, serverGame.ErrNotAllowed), errors.Is(err, serverGame.ErrPlayerNotFound):
		statusCode = http.StatusForbidden
	case errors.Is(err, serverGame.ErrFull):
		statusCode = http.StatusServiceUnavailable
	}
	log.Printf("game error (%v): %v", statusCode, err)
	http.Error(w, err.Error(), statusCode)
}

// writeInternalError logs and writes the error as an internal server error (500).
func writeInternalError(err error, log log.Logger, w http.ResponseWriter) {
	log.Printf("server error: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// httpError writes the error status code.
func httpError(w http.ResponseWriter, statusCode int) {
	http.Error(w, http.StatusText(statusCode), statusCode)
}
