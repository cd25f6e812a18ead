package config

import (
	"errors"
	"fmt"
	"io"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownTileKind is returned when a tile names a kind the level does not define.
	ErrUnknownTileKind = errors.New("unknown tile kind")
	// ErrInvalidShape is returned for shapes that are not exactly one box or mesh.
	ErrInvalidShape = errors.New("invalid shape")
	// ErrNoLevel is returned when a level cannot be found.
	ErrNoLevel = errors.New("level not found")
)

// Vec3 is a YAML friendly [x, y, z] triple.
type Vec3 [3]float32

func (v Vec3) Vector() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Level is a level file: static geometry, the tile layout and objectives.
type Level struct {
	Name            string             `yaml:"name"`
	Spawn           Vec3               `yaml:"spawn"`
	Static          []Shape            `yaml:"static"`
	TileKinds       map[string][]Shape `yaml:"tile_kinds"`
	Tiles           []TilePlacement    `yaml:"tiles"`
	Goal            Goal               `yaml:"goal"`
	CollectibleSize Vec3               `yaml:"collectible_size"`
	Collectibles    []Vec3             `yaml:"collectibles"`
}

// Shape is one piece of collision geometry; exactly one field is set.
type Shape struct {
	Box  *BoxShape  `yaml:"box,omitempty"`
	Mesh *MeshShape `yaml:"mesh,omitempty"`
}

type BoxShape struct {
	Center   Vec3 `yaml:"center"`
	Size     Vec3 `yaml:"size"`
	Rotation Vec3 `yaml:"rotation"` // Euler degrees
}

type MeshShape struct {
	Vertices []Vec3 `yaml:"vertices"`
	Indices  []int  `yaml:"indices"`
}

// TilePlacement puts one tile of a kind into the level.
type TilePlacement struct {
	Kind     string `yaml:"kind"`
	Position Vec3   `yaml:"position"`
	Rotation Vec3   `yaml:"rotation"` // Euler degrees
}

type Goal struct {
	Position Vec3 `yaml:"position"`
	Size     Vec3 `yaml:"size"`
}

// Validate checks references and shapes.
func (l *Level) Validate() error {
	var errs []error
	if l.Name == "" {
		errs = append(errs, errors.New("level name is required"))
	}
	for i, s := range l.Static {
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("static[%d]: %w", i, err))
		}
	}
	for kind, shapes := range l.TileKinds {
		for i, s := range shapes {
			if err := s.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("tile_kinds.%s[%d]: %w", kind, i, err))
			}
		}
	}
	for i, t := range l.Tiles {
		if _, ok := l.TileKinds[t.Kind]; !ok {
			errs = append(errs, fmt.Errorf("tiles[%d]: %w %q", i, ErrUnknownTileKind, t.Kind))
		}
	}
	return errors.Join(errs...)
}

func (s Shape) Validate() error {
	switch {
	case s.Box != nil && s.Mesh != nil:
		return fmt.Errorf("%w: both box and mesh set", ErrInvalidShape)
	case s.Box != nil:
		if s.Box.Size[0] <= 0 || s.Box.Size[1] <= 0 || s.Box.Size[2] <= 0 {
			return fmt.Errorf("%w: box size %v must be positive", ErrInvalidShape, s.Box.Size)
		}
	case s.Mesh != nil:
		if len(s.Mesh.Indices) == 0 || len(s.Mesh.Indices)%3 != 0 {
			return fmt.Errorf("%w: mesh needs a multiple of 3 indices, got %d", ErrInvalidShape, len(s.Mesh.Indices))
		}
	default:
		return fmt.Errorf("%w: neither box nor mesh set", ErrInvalidShape)
	}
	return nil
}

// WriteLevel encodes a level as YAML.
func WriteLevel(w io.Writer, l *Level) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("failed to encode level %s: %w", l.Name, err)
	}
	return enc.Close()
}
