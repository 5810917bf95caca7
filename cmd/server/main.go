// Package main starts the server after configuring it from supplied or standard arguments
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jacobpatterson1549/codenames/server"
)

// main configures and runs the server.
func main() {
	ctx := context.Background()
	logFlags := log.Ldate | log.Ltime | log.LUTC | log.Lshortfile | log.Lmsgprefix
	log := log.New(os.Stdout, "", logFlags)
	m := newMainFlags(os.Args, os.LookupEnv)
	words, err := m.words(embeddedWords)
	if err != nil {
		log.Fatalf("reading words: %v", err)
	}
	rb, err := m.resultBackend(ctx)
	if err != nil {
		log.Fatalf("setting up database: %v", err)
	}
	a, err := m.createApp(log, rb, words)
	if err != nil {
		log.Fatalf("creating server: %v", err)
	}
	done := make(chan os.Signal, 2)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	if err := a.run(ctx, log, done); err != nil {
		log.Fatalf("running server: %v", err)
	}
	log.Println("server run stopped successfully")
}

// run runs the lobby, game manager, and server until the server stops or a signal is received.
func (a app) run(ctx context.Context, log *log.Logger, done <-chan os.Signal) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	var g errgroup.Group
	g.Go(func() error {
		a.lobby.Run(ctx)
		return nil
	})
	g.Go(func() error {
		a.manager.Run(ctx)
		return nil
	})
	errC := a.server.Run()
	var runErr error
	select { // BLOCKING
	case err := <-errC:
		switch {
		case server.IsClosed(err):
			log.Printf("server shutdown triggered")
		default:
			runErr = fmt.Errorf("server stopped unexpectedly: %w", err)
		}
	case signal := <-done:
		log.Printf("handled signal: %v", signal)
	}
	stopErr := a.server.Stop(ctx)
	cancelFunc()
	g.Wait() // BLOCKING
	switch {
	case runErr != nil:
		return runErr
	case stopErr != nil:
		return fmt.Errorf("stopping server: %w", stopErr)
	}
	return nil
}
