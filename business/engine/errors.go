package engine

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound means the session id is unknown or already expired.
// The caller should tell the player to restart, not retry.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoCandidate means no tag survived the coverage/p-value filters.
// Recovered locally by falling back to a confirmation question.
var ErrNoCandidate = errors.New("no question candidate")

// ConfigError marks an out-of-range or malformed tunable. Fatal at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine config: %s: %s", e.Field, e.Reason)
}
