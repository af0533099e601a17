package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const mask = "***"

// sensitiveKeys are attribute key fragments whose values are always masked.
var sensitiveKeys = []string{"token", "secret", "password"}

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout flow UI/JSON-RPC).
// It standardizes common keys (e.g., "error" -> "err") and masks secrets:
// attributes whose key looks sensitive, and any occurrence of the given
// secret values inside string attributes.
func New(level slog.Level, secrets ...string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, secrets...)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level slog.Level, secrets ...string) *slog.Logger {
	known := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			known = append(known, s)
		}
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			if isSensitive(a.Key) {
				return slog.String(a.Key, mask)
			}
			if len(known) > 0 && (a.Value.Kind() == slog.KindString || a.Value.Kind() == slog.KindAny) {
				if masked, changed := redact(a.Value.String(), known); changed {
					return slog.String(a.Key, masked)
				}
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a textual level (debug, info, warn, error) to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func isSensitive(key string) bool {
	key = strings.ToLower(key)
	for _, k := range sensitiveKeys {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}

func redact(s string, secrets []string) (string, bool) {
	out := s
	for _, secret := range secrets {
		out = strings.ReplaceAll(out, secret, mask)
	}
	return out, out != s
}
