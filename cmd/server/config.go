package main

import (
	"context"
	crypto_rand "crypto/rand"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jacobpatterson1549/codenames/db"
	"github.com/jacobpatterson1549/codenames/db/firestore"
	"github.com/jacobpatterson1549/codenames/db/mongo"
	"github.com/jacobpatterson1549/codenames/db/result"
	"github.com/jacobpatterson1549/codenames/db/sql"
	"github.com/jacobpatterson1549/codenames/db/sql/postgres"
	"github.com/jacobpatterson1549/codenames/db/sql/sqlite"
	"github.com/jacobpatterson1549/codenames/server"
	"github.com/jacobpatterson1549/codenames/server/auth"
	serverGame "github.com/jacobpatterson1549/codenames/server/game"
	"github.com/jacobpatterson1549/codenames/server/lobby"
	"github.com/jacobpatterson1549/codenames/server/socket/gorilla"
	_ "github.com/lib/pq"  // register "postgres" database driver from package init() function
	_ "modernc.org/sqlite" // register "sqlite" database driver from package init() function
)

type (
	// app is the running parts of the server.
	app struct {
		lobby   backgroundRunner
		manager backgroundRunner
		server  serverRunner
	}

	// backgroundRunner runs until the context is done.
	backgroundRunner interface {
		Run(ctx context.Context)
	}

	// serverRunner serves requests until it is stopped.
	serverRunner interface {
		Run() <-chan error
		Stop(ctx context.Context) error
	}

	// setupBackend is a result backend that needs to be initialized before it is used.
	setupBackend interface {
		result.Backend
		Setup(ctx context.Context) error
	}
)

const (
	driverPostgres  = "postgres"
	driverSqlite    = sqlite.DriverName
	driverMongo     = "mongo"
	driverFirestore = "firestore"

	readWait    = 60 * time.Second
	writeWait   = 10 * time.Second
	pingPeriod  = 54 * time.Second // readWait * 0.9
	tokenKeyLen = 64
)

// createApp creates the lobby, game manager, and server.
func (m mainFlags) createApp(log *log.Logger, rb result.Backend, words []string) (*app, error) {
	timeFunc := func() int64 {
		return time.Now().UTC().Unix()
	}
	tokenizer, err := createTokenizer(crypto_rand.Reader, timeFunc)
	if err != nil {
		return nil, err
	}
	rd, err := result.NewDao(rb)
	if err != nil {
		return nil, err
	}
	lobbyCfg := m.lobbyConfig()
	l, err := lobbyCfg.NewLobby(log)
	if err != nil {
		return nil, err
	}
	managerCfg := m.managerConfig(words, timeFunc)
	gm, err := managerCfg.NewManager(log, l, rd)
	if err != nil {
		return nil, err
	}
	p := server.Parameters{
		Logger:    log,
		Tokenizer: tokenizer,
		Games:     gm,
		Lobby:     l,
		Results:   rd,
		Upgrader:  gorilla.NewUpgrader(readWait, writeWait),
	}
	serverCfg := m.serverConfig()
	s, err := serverCfg.NewServer(p)
	if err != nil {
		return nil, err
	}
	a := app{
		lobby:   l,
		manager: gm,
		server:  s,
	}
	return &a, nil
}

// createTokenizer creates the authentication token reader/writer with a random key.
func createTokenizer(keyReader io.Reader, timeFunc func() int64) (*auth.JwtTokenizer, error) {
	key := make([]byte, tokenKeyLen)
	if _, err := io.ReadFull(keyReader, key); err != nil {
		return nil, fmt.Errorf("creating authentication token key: %w", err)
	}
	cfg := auth.TokenizerConfig{
		TimeFunc: timeFunc,
		ValidSec: int64((24 * time.Hour).Seconds()), // 1 day
	}
	return cfg.NewTokenizer(key)
}

// lobbyConfig creates the configuration for sending changed games to players.
func (m mainFlags) lobbyConfig() lobby.Config {
	cfg := lobby.Config{
		Debug:        m.debugGame,
		MaxListeners: 256,
		BufferSize:   16,
	}
	return cfg
}

// managerConfig creates the configuration for running games.
func (m mainFlags) managerConfig(words []string, timeFunc func() int64) serverGame.ManagerConfig {
	cfg := serverGame.ManagerConfig{
		Debug:         m.debugGame,
		TimeFunc:      timeFunc,
		MoveDuration:  time.Duration(m.moveSec) * time.Second,
		TimerPeriod:   time.Second,
		MaxGames:      16,
		MaxPlayers:    12,
		Words:         words,
		ShuffleFunc:   rand.Shuffle,
		IDFunc:        uuid.NewString,
		ResultTimeout: 5 * time.Second,
	}
	return cfg
}

// serverConfig creates the configuration for serving requests.
func (m mainFlags) serverConfig() server.Config {
	cfg := server.Config{
		Port:          m.httpPort,
		ChallengePort: m.challengePort,
		StopDur:       5 * time.Second,
		TLSCertFile:   m.tlsCertFile,
		TLSKeyFile:    m.tlsKeyFile,
		ACMEHost:      m.acmeHost,
		ACMECacheDir:  m.acmeCacheDir,
		Debug:         m.debugGame,
		PingPeriod:    pingPeriod,
		PlayerIDFunc:  uuid.NewString,
		MaxResults:    100,
	}
	return cfg
}

// words reads the words file, using the embedded words if it is not specified.
func (m mainFlags) words(embedded string) ([]string, error) {
	if len(m.wordsFile) == 0 {
		return readWords(strings.NewReader(embedded))
	}
	f, err := os.Open(m.wordsFile)
	if err != nil {
		return nil, fmt.Errorf("trying to open words file: %w", err)
	}
	defer f.Close()
	return readWords(f)
}

// resultBackend creates and sets up the storage of results for the database driver.
func (m mainFlags) resultBackend(ctx context.Context) (result.Backend, error) {
	cfg := db.Config{
		QueryPeriod: 5 * time.Second,
	}
	var b setupBackend
	switch m.databaseDriver {
	case "":
		return result.NoDatabaseBackend{}, nil
	case driverPostgres, driverSqlite:
		d, err := m.sqlDatabase(cfg)
		if err != nil {
			return nil, err
		}
		if m.databaseDriver == driverPostgres {
			b = &postgres.ResultBackend{Database: d}
		} else {
			b = &sqlite.ResultBackend{Database: d}
		}
	case driverMongo:
		mb, err := mongo.NewResultBackend(ctx, cfg, m.databaseURL)
		if err != nil {
			return nil, err
		}
		b = mb
	case driverFirestore:
		fb, err := firestore.NewResultBackend(ctx, cfg, m.databaseURL)
		if err != nil {
			return nil, err
		}
		return fb, nil
	default:
		return nil, fmt.Errorf("unknown database driver: %q", m.databaseDriver)
	}
	if err := b.Setup(ctx); err != nil {
		return nil, fmt.Errorf("setting up %v result backend: %w", m.databaseDriver, err)
	}
	return b, nil
}

// sqlDatabase opens a SQL database with the driver.
func (m mainFlags) sqlDatabase(cfg db.Config) (*sql.Database, error) {
	if len(m.databaseURL) == 0 {
		return nil, fmt.Errorf("missing data-source uri")
	}
	dbCfg := sql.DatabaseConfig{
		DriverName:  m.databaseDriver,
		DatabaseURL: m.databaseURL,
		Config:      cfg,
	}
	if m.databaseDriver == driverSqlite {
		dbCfg.MaxOpenConns = 1
	}
	return dbCfg.NewDatabase()
}
