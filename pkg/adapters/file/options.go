package file

import (
	"log/slog"

	"github.com/aretw0/portrait/internal/logging"
	"github.com/aretw0/portrait/pkg/ports"
)

type settings struct {
	logger *slog.Logger
	media  ports.MediaResolver
}

// Option configures the file loaders.
type Option func(*settings)

// WithLogger sets the logger used to report skipped rows.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMedia attaches media references to questions at load time.
func WithMedia(media ports.MediaResolver) Option {
	return func(s *settings) {
		s.media = media
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
