package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/api"
	"github.com/jacobpatterson1549/codenames/ui/bus"
	"github.com/jacobpatterson1549/codenames/ui/http/native"
	"github.com/jacobpatterson1549/codenames/ui/lobby"
	"github.com/jacobpatterson1549/codenames/ui/log"
	"github.com/jacobpatterson1549/codenames/ui/router"
	"github.com/jacobpatterson1549/codenames/ui/screen"
	"github.com/jacobpatterson1549/codenames/ui/socket"
	"github.com/jacobpatterson1549/codenames/ui/socket/gorilla"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

type (
	// flags contains options for the client.
	flags struct {
		server    string
		timeout   time.Duration
		closeWait time.Duration
		verbose   bool
	}

	// client links up the components of the ui.
	client struct {
		log          *log.Log
		api          *api.Service
		bus          *bus.Bus
		router       *router.Router
		lobby        *lobby.Lobby
		gameList     *screen.GameList
		teamBuilding *screen.TeamBuilding
		board        *screen.Board
		outMu        sync.Mutex
		out          io.Writer
	}
)

const envPrefix = "CODENAMES"

// validate ensures the flags can create a client.
func (f flags) validate() error {
	switch {
	case len(f.server) == 0:
		return errors.New("--server required")
	case !strings.HasPrefix(f.server, "http://") && !strings.HasPrefix(f.server, "https://"):
		return fmt.Errorf("--server must be an http or https url: %q", f.server)
	case f.timeout <= 0:
		return fmt.Errorf("--timeout must be positive: %v", f.timeout)
	case f.closeWait <= 0:
		return fmt.Errorf("--close-wait must be positive: %v", f.closeWait)
	}
	return nil
}

// newCmd creates the root command that reads flags from the command line and environment variables.
func newCmd(f *flags, in io.Reader, out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "codenames",
		Short:   "Play codenames games from the terminal.",
		Args:    cobra.ExactArgs(0),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := f.newClient(out)
			if err != nil {
				return err
			}
			if err := c.init(ctx); err != nil {
				return err
			}
			defer c.lobby.Close()
			return c.run(ctx, in) // BLOCKING
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	fs.StringVarP(&f.server, "server", "s", "http://127.0.0.1:8000", "url of the codenames server (env: CODENAMES_SERVER)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 10*time.Second, "time to wait for each request to the server (env: CODENAMES_TIMEOUT)")
	fs.DurationVar(&f.closeWait, "close-wait", 2*time.Second, "time to wait for the server to acknowledge a closed channel (env: CODENAMES_CLOSE_WAIT)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every frame from the server (env: CODENAMES_VERBOSE)")

	fs.VisitAll(func(fl *pflag.Flag) {
		_ = v.BindPFlag(fl.Name, fl)
		_ = v.BindEnv(fl.Name)
		if !fl.Changed && v.IsSet(fl.Name) {
			_ = fs.Set(fl.Name, fmt.Sprintf("%v", v.Get(fl.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return cmd
}

// newClient creates and links up the ui components.
func (f flags) newClient(out io.Writer) (*client, error) {
	timeFunc := func() int64 {
		return time.Now().Unix()
	}
	l := log.New(out, timeFunc)
	l.Verbose = f.verbose
	httpClient := native.HTTPClient{
		Client: http.Client{
			Timeout: f.timeout,
		},
	}
	apiCfg := api.Config{
		BaseURL: f.server,
	}
	a, err := apiCfg.NewService(l, &httpClient)
	if err != nil {
		return nil, err
	}
	lobbySocket, err := f.newSocket("lobby", l)
	if err != nil {
		return nil, err
	}
	gameSocket, err := f.newSocket("game", l)
	if err != nil {
		return nil, err
	}
	b := bus.New()
	r := router.New()
	lo, err := lobby.New(l, a, b, lobbySocket, gameSocket)
	if err != nil {
		return nil, err
	}
	gameList, err := screen.NewGameList(lo, r)
	if err != nil {
		return nil, err
	}
	teamBuilding, err := screen.NewTeamBuilding(l, a, lo, r)
	if err != nil {
		return nil, err
	}
	board, err := screen.NewBoard(l, a, lo, r)
	if err != nil {
		return nil, err
	}
	c := client{
		log:          l,
		api:          a,
		bus:          b,
		router:       r,
		lobby:        lo,
		gameList:     gameList,
		teamBuilding: teamBuilding,
		board:        board,
		out:          out,
	}
	c.link()
	return &c, nil
}

// newSocket creates a push channel that connects with gorilla websockets.
func (f flags) newSocket(name string, l socket.Log) (*socket.Socket, error) {
	cfg := socket.Config{
		Name:      name,
		CloseWait: f.closeWait,
	}
	d := gorilla.NewDialer()
	d.HandshakeTimeout = f.timeout
	return cfg.NewSocket(l, d)
}

// link binds the screens to the router and the event bus.
// Only the screen of the current route is bound to a game.
func (c *client) link() {
	c.router.AttachMatched(router.Lobby, func(id game.ID) {
		c.teamBuilding.Unbind()
		c.board.Unbind()
		c.printGames()
	})
	c.router.AttachMatched(router.TeamBuilding, func(id game.ID) {
		c.board.Unbind()
		c.teamBuilding.Bind(id)
		c.printTeamBuilding()
	})
	c.router.AttachMatched(router.Game, func(id game.ID) {
		c.teamBuilding.Unbind()
		c.board.Bind(id)
		c.printBoard()
	})
	c.bus.Subscribe(bus.GameUpdated, c.teamBuilding.OnGameUpdated)
	c.bus.Subscribe(bus.GameUpdated, c.board.OnGameUpdated)
	c.bus.Subscribe(bus.GameUpdated, func(g game.Game) {
		c.log.Debug(fmt.Sprintf("game %v is %v", g.ID, g.State))
	})
}

// init reads the games and the identity of the player at the same time, then listens for changes to games.
func (c *client) init(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.lobby.ReadGames(gCtx)
	})
	g.Go(func() error {
		return c.lobby.ReadPlayerID(gCtx)
	})
	if err := g.Wait(); err != nil { // BLOCKING
		return fmt.Errorf("initializing client: %w", err)
	}
	if err := c.lobby.Listen(ctx); err != nil {
		return fmt.Errorf("initializing client: %w", err)
	}
	c.log.Info(fmt.Sprintf("connected as %v", c.lobby.PlayerID()))
	return nil
}
