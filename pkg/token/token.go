// Package token frames serialized game records as shareable text
// URIs: a scheme prefix, the base64url record payload, and a trailing
// slash that guards against partially copied text.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/gomoku/pkg/engine"
)

// Prefix starts every game token.
const Prefix = "gomoku://"

// Terminator ends every game token.
const Terminator = "/"

var (
	ErrMissingPrefix     = errors.New("token: missing gomoku:// prefix")
	ErrMissingTerminator = errors.New("token: missing trailing slash")
	ErrBadEncoding       = errors.New("token: malformed base64 payload")
)

// Encode renders the game's past moves as a shareable URI. Tokens
// always carry the canonical run-length record format.
func Encode(g *engine.Game) string {
	raw := g.Serialize(engine.FormatRunLength)
	return Prefix + base64.URLEncoding.EncodeToString(raw) + Terminator
}

// Decode parses a URI produced by Encode. Surrounding whitespace is
// ignored; everything else is rejected strictly, including records
// that do not replay to a legal game.
func Decode(s string) (*engine.Game, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, Prefix) {
		return nil, ErrMissingPrefix
	}
	s = strings.TrimPrefix(s, Prefix)
	if !strings.HasSuffix(s, Terminator) {
		return nil, ErrMissingTerminator
	}
	s = strings.TrimSuffix(s, Terminator)

	raw, err := base64.URLEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	return engine.Deserialize(engine.FormatRunLength, raw)
}
