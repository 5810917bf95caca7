package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/format"
	"github.com/jacobpatterson1549/codenames/ui/router"
	"github.com/spf13/cobra"
)

// errQuit is returned by the quit command to stop reading input.
var errQuit = errors.New("quit")

const defaultResultsLimit = 10

const rulesText = `Codenames: two teams, red and blue, each with a captain and agents.
The captains know which words belong to their team.  On their turn a captain gives a one-word clue
and a number.  Their agents then choose up to that number plus one cards.  A card of their color
lets them continue, any other card ends the turn.  The first team to reveal all of its cards wins.
The team that reveals the assassin loses.`

// run executes a command for each line of the input until the input ends or the player quits.
func (c *client) run(ctx context.Context, in io.Reader) error {
	cmd := c.newReplCmd()
	c.printf("type 'help' for commands\n")
	scanner := bufio.NewScanner(in)
	for scanner.Scan() { // BLOCKING
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		cmd.SetArgs(args)
		err := cmd.ExecuteContext(ctx)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			c.log.Error(err.Error())
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// newReplCmd creates the commands a player can type.
func (c *client) newReplCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(c.out)
	root.SetErr(c.out)
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(
		c.command("games", "list the games", cobra.NoArgs, func(ctx context.Context, args []string) error {
			c.printGames()
			return nil
		}),
		c.command("create", "create a game", cobra.NoArgs, func(ctx context.Context, args []string) error {
			return c.lobby.CreateGame(ctx)
		}),
		c.command("join <game number|game id>", "join a game", cobra.ExactArgs(1), c.joinGame),
		c.command("name <name>", "change your name in the game", cobra.MinimumNArgs(1), func(ctx context.Context, args []string) error {
			return c.teamBuilding.ChangeName(ctx, strings.Join(args, " "))
		}),
		c.command("team <red|blue>", "join a team", cobra.ExactArgs(1), c.joinTeam),
		c.command("captain", "become the captain of your team", cobra.NoArgs, func(ctx context.Context, args []string) error {
			return c.teamBuilding.BecomeCaptain(ctx)
		}),
		c.command("start", "start the game", cobra.NoArgs, func(ctx context.Context, args []string) error {
			return c.teamBuilding.StartGame(ctx)
		}),
		c.command("word <clue> <count>", "give a clue to your agents", cobra.ExactArgs(2), c.submitWord),
		c.command("card <card number|word>", "choose a card", cobra.ExactArgs(1), c.chooseCard),
		c.command("finish", "end the turn of your team", cobra.NoArgs, func(ctx context.Context, args []string) error {
			return c.board.FinishMove(ctx)
		}),
		c.command("show", "show the current screen", cobra.NoArgs, func(ctx context.Context, args []string) error {
			c.printScreen()
			return nil
		}),
		c.command("lobby", "go back to the list of games", cobra.NoArgs, func(ctx context.Context, args []string) error {
			c.router.NavTo(router.Lobby, "")
			return nil
		}),
		c.command("results [limit]", "show recently finished games", cobra.MaximumNArgs(1), c.printResults),
		c.command("rules", "show the rules", cobra.NoArgs, func(ctx context.Context, args []string) error {
			c.printf("%s\n", rulesText)
			return nil
		}),
		c.command("quit", "leave", cobra.NoArgs, func(ctx context.Context, args []string) error {
			return errQuit
		}),
	)
	return root
}

// command creates a subcommand that runs with the context of the line.
func (c *client) command(use, short string, args cobra.PositionalArgs, fn func(ctx context.Context, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fn(cmd.Context(), args)
		},
	}
}

func (c *client) joinGame(ctx context.Context, args []string) error {
	games := c.lobby.Games()
	if len(games) == 0 {
		return errors.New("no games, type 'create' to make one")
	}
	g, ok := find(games, args[0], func(g game.Game) string { return string(g.ID) })
	if !ok {
		return fmt.Errorf("no game %q", args[0])
	}
	return c.gameList.Select(ctx, g)
}

func (c *client) joinTeam(ctx context.Context, args []string) error {
	var t game.Team
	switch strings.ToLower(args[0]) {
	case "red":
		t = game.RedTeam
	case "blue":
		t = game.BlueTeam
	default:
		t = game.Team(args[0])
	}
	return c.teamBuilding.JoinTeam(ctx, t)
}

func (c *client) submitWord(ctx context.Context, args []string) error {
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("word count must be a number: %w", err)
	}
	return c.board.SubmitWord(ctx, args[0], count)
}

func (c *client) chooseCard(ctx context.Context, args []string) error {
	cards := c.board.Cards()
	if len(cards) == 0 {
		return errors.New("not on a board")
	}
	card, ok := find(cards, args[0], func(card game.Card) string { return card.Word })
	if !ok {
		return fmt.Errorf("no card %q", args[0])
	}
	return c.board.ChooseCard(ctx, card.ID)
}

func (c *client) printResults(ctx context.Context, args []string) error {
	limit := defaultResultsLimit
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("limit must be a positive number: %q", args[0])
		}
		limit = n
	}
	results, err := c.api.Results(ctx, limit)
	if err != nil {
		return err
	}
	c.outMu.Lock()
	defer c.outMu.Unlock()
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FINISHED\tWINNER\tRED\tBLUE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.FinishedAt.Local().Format(time.Stamp), r.Winner, strings.Join(r.RedPlayers, ", "), strings.Join(r.BluePlayers, ", "))
	}
	return w.Flush()
}

// find gets the item at the one-based position or with the key.
func find[T any](items []T, arg string, key func(T) string) (T, bool) {
	if n, err := strconv.Atoi(arg); err == nil && n > 0 && n <= len(items) {
		return items[n-1], true
	}
	for _, item := range items {
		if strings.EqualFold(key(item), arg) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// printScreen shows the screen of the current route.
func (c *client) printScreen() {
	switch c.router.Current().Route {
	case router.TeamBuilding:
		c.printTeamBuilding()
	case router.Game:
		c.printBoard()
	default:
		c.printGames()
	}
}

func (c *client) printGames() {
	games := c.lobby.Games()
	c.outMu.Lock()
	defer c.outMu.Unlock()
	if len(games) == 0 {
		fmt.Fprintln(c.out, "no games")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tSTATE\tPLAYERS\t")
	for i, g := range games {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", format.GameName(i+1), g.State, len(g.Players), format.HighlightForState(g.State))
	}
	w.Flush()
}

func (c *client) printTeamBuilding() {
	g, ok := c.teamBuilding.Game()
	if !ok {
		return
	}
	me := c.lobby.PlayerID()
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(c.out, "team building for game %v\n", g.ID)
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tTEAM\tROLE\t")
	for _, p := range g.Players {
		you := ""
		if p.ID == me {
			you = "(you)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Team, p.Role, you)
	}
	w.Flush()
}

func (c *client) printBoard() {
	g, ok := c.board.Game()
	if !ok {
		return
	}
	cards := c.board.Cards()
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(c.out, "game %v: %v", g.ID, g.State)
	switch {
	case g.State == game.Finished:
		fmt.Fprintf(c.out, ", %v won\n", g.Winner)
	case g.State.TeamThinking():
		fmt.Fprintf(c.out, ", clue %q for %d, %d guesses left, %ds\n", g.Word, g.WordCount, g.GuessesLeft, format.SecondsBefore(g.TimerEnd, time.Now()))
	default:
		fmt.Fprintf(c.out, ", %ds\n", format.SecondsBefore(g.TimerEnd, time.Now()))
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for i, card := range cards {
		t := ""
		if card.Type != game.Unknown {
			t = string(card.Type)
		}
		fmt.Fprintf(w, "%2d %s\t%s\t", i+1, card.Word, t)
		if (i+1)%5 == 0 {
			fmt.Fprintln(w)
		}
	}
	w.Flush()
}

func (c *client) printf(text string, a ...interface{}) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(c.out, text, a...)
}
