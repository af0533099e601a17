package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/portrait/internal/dto"
	"github.com/aretw0/portrait/pkg/domain"
)

// CSVLoader implements ports.GraphLoader over the questions table.
type CSVLoader struct {
	path string
	settings
}

// NewCSVLoader creates a loader for the CSV file at path.
func NewCSVLoader(path string, opts ...Option) *CSVLoader {
	return &CSVLoader{path: path, settings: newSettings(opts)}
}

// Load reads the table. A missing file yields an empty graph; bad rows are
// logged and skipped.
func (l *CSVLoader) Load(ctx context.Context) (*domain.Graph, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Error("questions file not found", "path", l.path)
			return domain.NewGraph()
		}
		return nil, fmt.Errorf("failed to open questions: %w", err)
	}
	defer f.Close()

	return l.Parse(ctx, f)
}

// Parse builds a graph from CSV content.
func (l *CSVLoader) Parse(ctx context.Context, r io.Reader) (*domain.Graph, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewGraph()
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	hasPortrait := slices.Contains(header, dto.ColPortrait)

	b := newGraphBuilder()
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			l.logger.Error("skipping unreadable row", "line", line, "err", err)
			continue
		}

		var row dto.QuestionRow
		if err := dto.Decode(zip(header, record), &row); err != nil {
			l.logger.Error("skipping row", "line", line, "err", err)
			continue
		}
		if err := l.addRow(b, row, hasPortrait); err != nil {
			l.logger.Error("skipping row", "line", line, "err", err)
		}
	}

	return b.graph(l.settings)
}

func (l *CSVLoader) addRow(b *graphBuilder, row dto.QuestionRow, hasPortrait bool) error {
	if strings.TrimSpace(row.Branch) == "" || strings.TrimSpace(row.Question) == "" {
		return nil
	}
	branch, err := atoi(dto.ColBranch, row.Branch)
	if err != nil {
		return err
	}
	id, err := atoi(dto.ColQuestion, row.Question)
	if err != nil {
		return err
	}

	// The question is registered before its option so a malformed option
	// cell only drops that option.
	b.add(branch, id, row.Text, isFinal(row.Final), nil)
	opt, err := parseOption(row, hasPortrait)
	if err != nil || opt == nil {
		return err
	}
	if b.add(branch, id, row.Text, isFinal(row.Final), opt) {
		l.logger.Warn("duplicate choice replaced", "branch", branch, "question", id, "choice", opt.Choice)
	}
	return nil
}

func parseOption(row dto.QuestionRow, hasPortrait bool) (*domain.Option, error) {
	if strings.TrimSpace(row.Choice) == "" || strings.TrimSpace(row.Label) == "" {
		return nil, nil
	}
	choice, err := atoi(dto.ColChoice, row.Choice)
	if err != nil {
		return nil, err
	}
	o := domain.Option{
		Choice:       choice,
		Label:        row.Label,
		Emoji:        strings.TrimSpace(row.Emoji),
		Confirmation: strings.TrimSpace(row.Confirmation),
		PortraitTag:  strings.TrimSpace(row.Portrait),
		Advice:       row.Advice,
		Description:  strings.TrimSpace(row.Description),
	}
	if !hasPortrait {
		o.PortraitTag = domain.DefaultPortrait
	}
	if next := strings.TrimSpace(row.Next); next != "" {
		n, err := atoi(dto.ColNext, next)
		if err != nil {
			return nil, err
		}
		o.NextQ = domain.Next(n)
	}
	return &o, nil
}

func zip(header, record []string) map[string]string {
	m := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(record) {
			m[h] = record[i]
		}
	}
	return m
}

func atoi(column, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", column, err)
	}
	return n, nil
}

func isFinal(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "да", "yes", "1":
		return true
	}
	return false
}
