package storage

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"trail-recommender/internal/domain"
)

type trailDocument struct {
	Trails []domain.RawTrail `json:"trails"`
}

// LoadTrailsFromFile reads a trail catalog from a JSON file. Both a bare array
// and an object with a "trails" array are accepted; null criteria stay nil.
func LoadTrailsFromFile(path string) ([]domain.RawTrail, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trails file: %w", err)
	}
	return ParseTrails(b)
}

func ParseTrails(b []byte) ([]domain.RawTrail, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '{' {
		var doc trailDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal trails: %w", err)
		}
		return doc.Trails, nil
	}
	var trails []domain.RawTrail
	if err := json.Unmarshal(trimmed, &trails); err != nil {
		return nil, fmt.Errorf("unmarshal trails: %w", err)
	}
	return trails, nil
}
