package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

const (
	environmentVariableHTTPPort      = "HTTP_PORT"
	environmentVariablePort          = "PORT"
	environmentVariableDatabaseURL   = "DATABASE_URL"
	environmentVariableDatabaseDrive = "DATABASE_DRIVER"
	environmentVariableWordsFile     = "WORDS_FILE"
	environmentVariableDebugGame     = "DEBUG_MESSAGES"
	environmentVariableTLSCertFile   = "TLS_CERT_FILE"
	environmentVariableTLSKeyFile    = "TLS_KEY_FILE"
	environmentVariableACMEHost      = "ACME_HOST"
	environmentVariableACMECacheDir  = "ACME_CACHE_DIR"
	environmentVariableChallengePort = "ACME_CHALLENGE_PORT"
	environmentVariableMoveSec       = "MOVE_SECONDS"
)

// mainFlags are the configuration options which can be easily configured at run startup for different environments.
type mainFlags struct {
	httpPort       int
	challengePort  int
	databaseURL    string
	databaseDriver string
	wordsFile      string
	tlsCertFile    string
	tlsKeyFile     string
	acmeHost       string
	acmeCacheDir   string
	debugGame      bool
	moveSec        int
}

const (
	defaultHTTPPort      = 8000
	defaultChallengePort = 80
	defaultACMECacheDir  = "autocert-cache"
	defaultMoveSec       = 60
)

// usage prints how to run the server to the flagset's output.
func usage(fs *flag.FlagSet) {
	envVars := []string{
		environmentVariableHTTPPort,
		environmentVariablePort,
		environmentVariableDatabaseURL,
		environmentVariableDatabaseDrive,
		environmentVariableWordsFile,
		environmentVariableDebugGame,
		environmentVariableTLSCertFile,
		environmentVariableTLSKeyFile,
		environmentVariableACMEHost,
		environmentVariableACMECacheDir,
		environmentVariableChallengePort,
		environmentVariableMoveSec,
	}
	fmt.Fprintf(fs.Output(), "Runs the codenames server\n")
	fmt.Fprintf(fs.Output(), "Reads environment variables when possible: [%s]\n", strings.Join(envVars, ","))
	fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
	fs.PrintDefaults()
}

// newFlagSet creates a flagSet that populates the specified mainFlags.
func (m *mainFlags) newFlagSet(osLookupEnvFunc func(string) (string, bool), portOverride *int) *flag.FlagSet {
	fs := flag.NewFlagSet("main", flag.ExitOnError)
	fs.Usage = func() {
		usage(fs) // [lazy evaluation]
	}
	envValue := func(key string) string {
		if envValue, ok := osLookupEnvFunc(key); ok {
			return envValue
		}
		return ""
	}
	envValueOrDefault := func(key, defaultValue string) string {
		if envValue, ok := osLookupEnvFunc(key); ok {
			return envValue
		}
		return defaultValue
	}
	envValueInt := func(key string, defaultValue int) int {
		v1 := envValue(key)
		v2, err := strconv.Atoi(v1)
		if err != nil {
			return defaultValue
		}
		return v2
	}
	envPresent := func(key string) bool {
		_, ok := osLookupEnvFunc(key)
		return ok
	}
	fs.IntVar(&m.httpPort, "http-port", envValueInt(environmentVariableHTTPPort, defaultHTTPPort), "The TCP port for server requests.")
	fs.IntVar(portOverride, "port", envValueInt(environmentVariablePort, 0), "The port to run the server on.  Overrides the -http-port flag.")
	fs.StringVar(&m.databaseURL, "data-source", envValue(environmentVariableDatabaseURL), "The data source of the database that stores the results of games.  For firestore, this is the project id.")
	fs.StringVar(&m.databaseDriver, "database-driver", envValue(environmentVariableDatabaseDrive), "The type of database to store results in: postgres, sqlite, mongo, or firestore.  Results are not stored if empty.")
	fs.StringVar(&m.wordsFile, "words-file", envValue(environmentVariableWordsFile), "The file of words cards are drawn from, one per line.  The embedded words are used if empty.")
	fs.BoolVar(&m.debugGame, "debug-game", envPresent(environmentVariableDebugGame), "Logs games in the console when they change and are sent to players.")
	fs.StringVar(&m.tlsCertFile, "tls-cert-file", envValue(environmentVariableTLSCertFile), "The absolute path of the certificate file to use for TLS.")
	fs.StringVar(&m.tlsKeyFile, "tls-key-file", envValue(environmentVariableTLSKeyFile), "The absolute path of the key file to use for TLS.")
	fs.StringVar(&m.acmeHost, "acme-host", envValue(environmentVariableACMEHost), "The domain to automatically get a TLS certificate for with ACME.")
	fs.StringVar(&m.acmeCacheDir, "acme-cache-dir", envValueOrDefault(environmentVariableACMECacheDir, defaultACMECacheDir), "The directory automatically managed certificates are stored in.")
	fs.IntVar(&m.challengePort, "acme-challenge-port", envValueInt(environmentVariableChallengePort, defaultChallengePort), "The TCP port for ACME HTTP-01 challenges.")
	fs.IntVar(&m.moveSec, "move-sec", envValueInt(environmentVariableMoveSec, defaultMoveSec), "The number of seconds a captain or the agents have to move.")
	return fs
}

// newMainFlags creates a new, populated mainFlags structure.
// Fields are populated from command line arguments.
// If fields are not specified on the command line, environment variable values are used before defaulting to other defaults.
func newMainFlags(osArgs []string, osLookupEnvFunc func(string) (string, bool)) mainFlags {
	if len(osArgs) == 0 {
		osArgs = []string{""}
	}
	programArgs := osArgs[1:]
	var m mainFlags
	var portOverride int
	fs := m.newFlagSet(osLookupEnvFunc, &portOverride)
	fs.Parse(programArgs)
	if portOverride != 0 {
		m.httpPort = portOverride
	}
	return m
}
