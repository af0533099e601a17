package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/portrait/pkg/domain"
)

type yamlDocument struct {
	Branches []yamlBranch `yaml:"branches"`
}

type yamlBranch struct {
	ID        int               `yaml:"id"`
	Questions []domain.Question `yaml:"questions"`
}

// YAMLLoader implements ports.GraphLoader over a structured questions file.
type YAMLLoader struct {
	path string
	settings
}

// NewYAMLLoader creates a loader for the YAML file at path.
func NewYAMLLoader(path string, opts ...Option) *YAMLLoader {
	return &YAMLLoader{path: path, settings: newSettings(opts)}
}

// Load reads the file. A missing file yields an empty graph. Unlike the CSV
// source, duplicates are rejected rather than merged.
func (l *YAMLLoader) Load(ctx context.Context) (*domain.Graph, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Error("questions file not found", "path", l.path)
			return domain.NewGraph()
		}
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}
	return l.Parse(data)
}

// Parse builds a graph from YAML content.
func (l *YAMLLoader) Parse(data []byte) (*domain.Graph, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}

	var questions []domain.Question
	for _, b := range doc.Branches {
		if b.ID <= 0 {
			return nil, fmt.Errorf("branch id must be positive, got %d", b.ID)
		}
		for _, q := range b.Questions {
			q.Branch = b.ID
			questions = append(questions, q)
		}
	}
	return buildGraph(questions, l.settings)
}
