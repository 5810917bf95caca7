// Package server runs the http server which lets players create, join, and play games.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/acme/autocert"

	"github.com/jacobpatterson1549/codenames/server/log"
)

type (
	// Server runs the service.
	Server struct {
		log log.Logger
		// HTTPServer serves the endpoints of the service.
		HTTPServer *http.Server
		// ChallengeServer answers ACME HTTP-01 challenges and redirects other requests to HTTPS.
		// It is nil unless certificates are managed automatically.
		ChallengeServer *http.Server
		certManager     *autocert.Manager
		cancel          context.CancelFunc
		Config
	}

	// Config contains fields which describe the server.
	Config struct {
		// Port is the TCP port the service is served on.
		Port int
		// ChallengePort is the TCP port for http requests when certificates are managed automatically.
		ChallengePort int
		// StopDur is the maximum duration the server should take to shutdown gracefully.
		StopDur time.Duration
		// TLSCertFile is the public HTTPS TLS certificate file.
		TLSCertFile string
		// TLSKeyFile is the private HTTPS TLS key file.
		TLSKeyFile string
		// ACMEHost is the domain to automatically get a TLS certificate for.
		ACMEHost string
		// ACMECacheDir is the directory automatically managed certificates are stored in.
		ACMECacheDir string
		// Debug is a flag that causes sockets to log the games they write.
		Debug bool
		// PingPeriod is how often websockets are pinged.  Should be less than the read wait of the upgrader.
		PingPeriod time.Duration
		// PlayerIDFunc creates ids for new players.
		PlayerIDFunc func() string
		// MaxResults is the most results that can be read at once.
		MaxResults int
	}
)

// NewServer creates a Server from the Config.
func (cfg Config) NewServer(p Parameters) (*Server, error) {
	if err := cfg.validate(p); err != nil {
		return nil, fmt.Errorf("creating server: validation: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := Server{
		log: p.Logger,
		HTTPServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           cfg.handler(ctx, p),
			ReadHeaderTimeout: 10 * time.Second,
		},
		cancel: cancel,
		Config: cfg,
	}
	s.HTTPServer.RegisterOnShutdown(cancel)
	if cfg.hasACME() {
		m := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(cfg.ACMEHost),
			Cache:      autocert.DirCache(cfg.ACMECacheDir),
		}
		s.certManager = m
		s.HTTPServer.TLSConfig = m.TLSConfig()
		s.ChallengeServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.ChallengePort),
			Handler:           m.HTTPHandler(nil),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	return &s, nil
}

// validate ensures the configuration and parameters have no errors.
func (cfg Config) validate(p Parameters) error {
	if err := p.validate(); err != nil {
		return err
	}
	switch {
	case cfg.Port <= 0:
		return fmt.Errorf("positive port required")
	case cfg.StopDur <= 0:
		return fmt.Errorf("stop timeout duration required")
	case cfg.PingPeriod <= 0:
		return fmt.Errorf("positive ping period required")
	case cfg.PlayerIDFunc == nil:
		return fmt.Errorf("player id func required")
	case cfg.MaxResults <= 0:
		return fmt.Errorf("positive max results required")
	case len(cfg.TLSCertFile) == 0 != (len(cfg.TLSKeyFile) == 0):
		return fmt.Errorf("both tls cert and key files are required to use tls")
	case cfg.hasACME() && len(cfg.TLSCertFile) != 0:
		return fmt.Errorf("tls files cannot be used when certificates are managed automatically")
	case cfg.hasACME() && cfg.ChallengePort <= 0:
		return fmt.Errorf("positive challenge port required to manage certificates automatically")
	case cfg.hasACME() && len(cfg.ACMECacheDir) == 0:
		return fmt.Errorf("certificate cache directory required to manage certificates automatically")
	}
	return nil
}

// Run the server asynchronously until it receives a shutdown signal.
// When the servers stop, errors are sent on the returned channel.
func (s *Server) Run() <-chan error {
	errC := make(chan error, 2)
	if s.ChallengeServer != nil {
		go func() {
			errC <- s.ChallengeServer.ListenAndServe()
		}()
	}
	go func() {
		var err error
		switch {
		case s.certManager != nil:
			s.log.Printf("starting server at https://%v%v", s.ACMEHost, s.HTTPServer.Addr)
			err = s.HTTPServer.ListenAndServeTLS("", "")
		case len(s.TLSCertFile) != 0:
			s.log.Printf("starting server at https://127.0.0.1%v", s.HTTPServer.Addr)
			err = s.HTTPServer.ListenAndServeTLS(s.TLSCertFile, s.TLSKeyFile)
		default:
			s.log.Printf("starting server at http://127.0.0.1%v", s.HTTPServer.Addr)
			err = s.HTTPServer.ListenAndServe()
		}
		errC <- err
	}()
	return errC
}

// Stop asks the server to shutdown and waits for the shutdown to complete.
// Open websockets are closed.  An error is returned if the context times out.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, s.StopDur)
	defer cancelFunc()
	s.cancel()
	var challengeShutdownErr error
	if s.ChallengeServer != nil {
		challengeShutdownErr = s.ChallengeServer.Shutdown(ctx)
	}
	httpShutdownErr := s.HTTPServer.Shutdown(ctx)
	switch {
	case httpShutdownErr != nil:
		return httpShutdownErr
	case challengeShutdownErr != nil:
		return challengeShutdownErr
	}
	return nil
}

// IsClosed determines if the error is from the server being stopped.
func IsClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed)
}

// hasACME determines if certificates should be managed automatically.
func (cfg Config) hasACME() bool {
	return len(cfg.ACMEHost) != 0
}
