package deepzoom

import (
	"context"
	"errors"
	"fmt"
)

// ErrLevelNotFound is returned by providers when a path does not resolve.
var ErrLevelNotFound = errors.New("deepzoom: level not found")

// SceneProvider supplies scene tree nodes by slash-separated path.
type SceneProvider interface {
	Load(ctx context.Context, path string) (*ViewGroup, error)
}

// StaticProvider serves levels from an in-memory tree.
type StaticProvider struct {
	Root *ViewGroup
}

func (p StaticProvider) Load(ctx context.Context, path string) (*ViewGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Root == nil {
		return nil, fmt.Errorf("load %q: %w", path, ErrLevelNotFound)
	}
	g := p.Root.Find(path)
	if g == nil {
		return nil, fmt.Errorf("load %q: %w", path, ErrLevelNotFound)
	}
	return g, nil
}
