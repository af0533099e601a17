package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/aretw0/portrait/internal/dto"
	"github.com/aretw0/portrait/pkg/domain"
)

// TextsLoader implements ports.TextsLoader over a key,text CSV file.
type TextsLoader struct {
	path string
	settings
}

// NewTextsLoader creates a loader for the catalogue at path.
func NewTextsLoader(path string, opts ...Option) *TextsLoader {
	return &TextsLoader{path: path, settings: newSettings(opts)}
}

// LoadTexts overrides the keys of base found in the file. A missing file
// returns base unchanged; rows with an empty key or text are skipped.
func (l *TextsLoader) LoadTexts(ctx context.Context, base domain.Texts) (domain.Texts, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("texts file not found, using defaults", "path", l.path)
			return base, nil
		}
		return base, fmt.Errorf("failed to open texts: %w", err)
	}
	defer f.Close()

	overrides, err := l.read(ctx, f)
	if err != nil {
		return base, err
	}
	if err := dto.Decode(overrides, &base); err != nil {
		return base, fmt.Errorf("failed to apply texts: %w", err)
	}
	return base, nil
}

func (l *TextsLoader) read(ctx context.Context, r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read texts header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	overrides := make(map[string]string)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			l.logger.Error("skipping unreadable texts row", "err", err)
			continue
		}

		var row dto.TextRow
		if err := dto.Decode(zip(header, record), &row); err != nil {
			l.logger.Error("skipping texts row", "err", err)
			continue
		}
		key := strings.TrimSpace(row.Key)
		if key == "" || row.Text == "" {
			continue
		}
		overrides[key] = row.Text
	}
	return overrides, nil
}
