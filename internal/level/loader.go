package level

import (
	"context"
	"fmt"
	"os"

	"github.com/Bullke/DFL---HTL/internal/tile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Loader reads level files against a tile registry.
type Loader struct {
	registry *tile.Registry
	log      *zap.Logger
}

// NewLoader creates a loader. A nil registry uses tile.DefaultRegistry.
func NewLoader(registry *tile.Registry, log *zap.Logger) *Loader {
	if registry == nil {
		registry = tile.DefaultRegistry()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{registry: registry, log: log}
}

// LoadLevel loads and validates the level at path.
func (ld *Loader) LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}
	l, err := ld.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return l, nil
}

// Parse builds and validates a level from YAML.
func (ld *Loader) Parse(data []byte) (*Level, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}
	return ld.Build(f)
}

// Build creates and validates the level f describes.
func (ld *Loader) Build(f File) (*Level, error) {
	l, err := build(f, ld.registry, ld.log)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// LoadAll loads every path concurrently. The result keeps the order of
// paths; the first failure cancels the rest.
func (ld *Loader) LoadAll(ctx context.Context, paths []string) ([]*Level, error) {
	levels := make([]*Level, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for k, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l, err := ld.LoadLevel(path)
			if err != nil {
				return err
			}
			levels[k] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return levels, nil
}

// Save writes l to path as YAML.
func Save(l *Level, path string) error {
	f, err := l.Save()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode level: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write level file %s: %w", path, err)
	}
	return nil
}
