package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/portrait/pkg/domain"
)

// Codec converts sessions to bytes and back.
type Codec interface {
	Encode(s *domain.Session) ([]byte, error)
	Decode(data []byte) (*domain.Session, error)
}

// JSONCodec stores sessions as plain JSON.
type JSONCodec struct{}

func (JSONCodec) Encode(s *domain.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

func (JSONCodec) Decode(data []byte) (*domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}
