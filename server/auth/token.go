// Package auth creates and reads the access tokens that let players act in games.
package auth

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/jacobpatterson1549/codenames/game"
)

type (
	// JwtTokenizer creates and reads JSON Web Tokens for players.
	JwtTokenizer struct {
		method jwt.SigningMethod
		key    interface{}
		TokenizerConfig
	}

	// TokenizerConfig contains fields which describe a Tokenizer.
	TokenizerConfig struct {
		// TimeFunc is a function which should supply the current time since the unix epoch.
		// Used to set the the length of time the token is valid.
		TimeFunc func() int64
		// ValidSec is the length of time the token is valid from the issuing time, in seconds.
		ValidSec int64
	}
)

// NewTokenizer creates a Tokenizer that signs tokens with the key.
func (cfg TokenizerConfig) NewTokenizer(key interface{}) (*JwtTokenizer, error) {
	if err := cfg.validate(key); err != nil {
		return nil, fmt.Errorf("creating tokenizer: validation: %w", err)
	}
	t := JwtTokenizer{
		method:          jwt.SigningMethodHS256,
		key:             key,
		TokenizerConfig: cfg,
	}
	return &t, nil
}

// validate ensures the configuration has no errors.
func (cfg TokenizerConfig) validate(key interface{}) error {
	switch {
	case key == nil:
		return fmt.Errorf("key required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	case cfg.ValidSec <= 0:
		return fmt.Errorf("positive valid seconds required")
	}
	return nil
}

// Create makes a token for the player.  The player id is stored in the subject.
func (j JwtTokenizer) Create(playerID game.PlayerID) (string, error) {
	now := j.TimeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   string(playerID),
		NotBefore: jwt.NewNumericDate(unixTime(now)),
		ExpiresAt: jwt.NewNumericDate(unixTime(now + j.ValidSec)),
	}
	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString(j.key)
}

// ReadPlayerID extracts the player id from the token string.
func (j JwtTokenizer) ReadPlayerID(tokenString string) (game.PlayerID, error) {
	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(tokenString, &claims, j.keyFunc); err != nil {
		return "", fmt.Errorf("reading player id: %w", err)
	}
	return game.PlayerID(claims.Subject), nil
}

// keyFunc ensures the key type (method) of the token is correct before returning the key.
func (j JwtTokenizer) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != j.method {
		return nil, fmt.Errorf("incorrect authorization signing method")
	}
	return j.key, nil
}

// unixTime converts seconds since the unix epoch to a time.
func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0)
}
