// Package dataset loads the reference inputs of a run: the room registry
// and the venue source list. Files are JSON or YAML, chosen by extension.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/okian/venuematch/internal/domain/model"
)

// LoadRooms reads the room registry at path. Registry order is kept.
func LoadRooms(ctx context.Context, path string) ([]model.Room, error) {
	var rooms []model.Room
	if err := load(ctx, path, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// LoadVenues reads the venue source list at path.
func LoadVenues(ctx context.Context, path string) ([]string, error) {
	var venues []string
	if err := load(ctx, path, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func load(ctx context.Context, path string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unmarshal, err := decoderFor(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	if err := unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return nil
}

func decoderFor(path string) (func([]byte, any) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal, nil
	case ".yaml", ".yml":
		return func(data []byte, v any) error { return yaml.Unmarshal(data, v) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}
