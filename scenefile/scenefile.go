// Package scenefile reads nested scene trees from YAML.
//
// A scene file describes the root group and its descendants:
//
//	name: campus
//	width: 2000
//	height: 1500
//	children:
//	  - name: library
//	    left: 200
//	    top: 300
//	    width: 400
//	    height: 300
//	    scale: 0.1
//	    children:
//	      - {name: reading-room, left: 100, top: 100, width: 1500, height: 1000}
//
// Box coordinates are in the parent's content units; scale maps the group's
// own content units to box units and defaults to 1.
package scenefile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/deepzoom"
)

// ErrInvalidScene is wrapped by every validation error.
var ErrInvalidScene = errors.New("scenefile: invalid scene")

// Node is the YAML form of a deepzoom.ViewGroup.
type Node struct {
	ID       string  `yaml:"id,omitempty"`
	Name     string  `yaml:"name"`
	Left     float64 `yaml:"left,omitempty"`
	Top      float64 `yaml:"top,omitempty"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Scale    float64 `yaml:"scale,omitempty"`
	Label    string  `yaml:"label,omitempty"`
	Children []Node  `yaml:"children,omitempty"`
}

// Parse decodes a scene tree from YAML data.
func Parse(data []byte) (*deepzoom.ViewGroup, error) {
	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return Build(root)
}

// Decode reads a scene tree from r.
func Decode(r io.Reader) (*deepzoom.ViewGroup, error) {
	var root Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return Build(root)
}

// Load reads the scene file at path.
func Load(path string) (*deepzoom.ViewGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Build validates root and converts it into a ViewGroup tree. Nodes without
// an id get a random UUID. A node's Label is kept as the group's UserData.
func Build(root Node) (*deepzoom.ViewGroup, error) {
	return build(root, "")
}

func build(n Node, at string) (*deepzoom.ViewGroup, error) {
	where := n.Name
	if at != "" {
		where = at + "/" + n.Name
	}
	if at != "" && n.Name == "" {
		return nil, fmt.Errorf("%s: child without a name: %w", at, ErrInvalidScene)
	}
	if !(n.Width > 0) || !(n.Height > 0) {
		return nil, fmt.Errorf("%s: size %vx%v must be positive: %w", where, n.Width, n.Height, ErrInvalidScene)
	}
	if n.Scale < 0 {
		return nil, fmt.Errorf("%s: negative scale %v: %w", where, n.Scale, ErrInvalidScene)
	}

	g := deepzoom.NewViewGroup(n.Name, n.Left, n.Top, n.Width, n.Height, n.Scale)
	g.ID = n.ID
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if n.Label != "" {
		g.UserData = n.Label
	}

	seen := make(map[string]bool, len(n.Children))
	for _, c := range n.Children {
		if seen[c.Name] {
			return nil, fmt.Errorf("%s: duplicate child %q: %w", where, c.Name, ErrInvalidScene)
		}
		seen[c.Name] = true
		child, err := build(c, where)
		if err != nil {
			return nil, err
		}
		g.AddChild(child)
	}
	return g, nil
}

// Provider is a deepzoom.SceneProvider backed by a scene file. The file is
// read on first use and cached until Reload.
type Provider struct {
	Path string

	mu   sync.Mutex
	root *deepzoom.ViewGroup
}

// NewProvider creates a Provider for the scene file at path.
func NewProvider(path string) *Provider {
	return &Provider{Path: path}
}

// Load returns the group at path in the scene file. The empty path is the
// root.
func (p *Provider) Load(ctx context.Context, path string) (*deepzoom.ViewGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := p.tree()
	if err != nil {
		return nil, err
	}
	return deepzoom.StaticProvider{Root: root}.Load(ctx, path)
}

// Reload drops the cached tree so the next Load reads the file again.
func (p *Provider) Reload() {
	p.mu.Lock()
	p.root = nil
	p.mu.Unlock()
}

func (p *Provider) tree() (*deepzoom.ViewGroup, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.root != nil {
		return p.root, nil
	}
	root, err := Load(p.Path)
	if err != nil {
		return nil, err
	}
	p.root = root
	return root, nil
}
