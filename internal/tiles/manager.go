package tiles

import (
	"sync/atomic"

	"ratarch/internal/config"
	"ratarch/internal/engine"
	"ratarch/internal/logging"
	"ratarch/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SelectResult says what a pick did.
type SelectResult int

const (
	SelectMissed SelectResult = iota
	SelectPending
	SelectSwapped
	SelectCleared
)

func (r SelectResult) String() string {
	switch r {
	case SelectPending:
		return "pending"
	case SelectSwapped:
		return "swapped"
	case SelectCleared:
		return "cleared"
	default:
		return "missed"
	}
}

// SwapEvent is emitted after two tiles traded places.
type SwapEvent struct {
	A, B *Tile
}

// Manager owns the tiles and the dynamic partition built from them.
//
// The partition is copy-on-write: every change builds a new one and
// publishes it with a single store, so a reader holding a snapshot never
// sees geometry that disagrees with itself. Manager methods other than
// Partition and the Querier methods must be called from the simulation
// goroutine.
type Manager struct {
	tiles     []*Tile
	byID      map[uuid.UUID]*Tile
	partition atomic.Pointer[physics.Partition]

	selected *Tile
	restore  string

	cfg   config.TilesConfig
	log   *zap.Logger
	scene *engine.Scene
	root  *engine.GameObject

	OnSwap   engine.EventWithArg[SwapEvent]
	OnSelect engine.EventWithArg[*Tile]
}

// NewManager creates an empty manager. Tile objects are children of Root.
// When scene is not nil they are added to it and removed again on Reset.
func NewManager(cfg config.TilesConfig, scene *engine.Scene, log *zap.Logger) *Manager {
	m := &Manager{
		byID:  make(map[uuid.UUID]*Tile),
		cfg:   cfg,
		log:   logging.OrNop(log).Named("tiles"),
		scene: scene,
		root:  engine.NewGameObject("Tiles"),
	}
	m.partition.Store(physics.NewPartition())
	return m
}

// SetConfig replaces the tile settings, e.g. after a tuning reload.
func (m *Manager) SetConfig(cfg config.TilesConfig) {
	m.cfg = cfg
}

// Partition returns the current dynamic partition snapshot.
func (m *Manager) Partition() *physics.Partition {
	return m.partition.Load()
}

func (m *Manager) IntersectCapsule(c physics.Capsule) (physics.Contact, bool) {
	return m.partition.Load().IntersectCapsule(c)
}

func (m *Manager) IntersectSphere(s physics.Sphere) (physics.Contact, bool) {
	return m.partition.Load().IntersectSphere(s)
}

// Root is the parent object of every tile.
func (m *Manager) Root() *engine.GameObject {
	return m.root
}

// Tiles returns the tiles in creation order.
func (m *Manager) Tiles() []*Tile {
	return m.tiles
}

func (m *Manager) Tile(id uuid.UUID) (*Tile, bool) {
	t, ok := m.byID[id]
	return t, ok
}

// Selected is the tile waiting for a swap partner, or nil.
func (m *Manager) Selected() *Tile {
	return m.selected
}

// CreateTile places a new tile and inserts its collider into the dynamic
// partition.
func (m *Manager) CreateTile(kind string, mesh physics.ColliderMesh, position, rotation rl.Vector3) *Tile {
	t := newTile(kind, mesh, m.root, position, rotation)
	m.tiles = append(m.tiles, t)
	m.byID[t.ID] = t
	if m.scene != nil {
		if m.root.Scene != m.scene {
			m.scene.AddGameObject(m.root)
		}
		m.scene.AddGameObject(t.Object)
	}

	next := m.partition.Load().Clone()
	next.Insert(t.world)
	m.partition.Store(next)

	m.log.Debug("tile created",
		zap.Stringer("id", t.ID),
		zap.String("kind", kind),
		logging.Vec3("position", position),
		zap.Int("triangles", len(t.world)))
	return t
}

// Swap exchanges the positions of two tiles. Rotations stay with their tile.
func (m *Manager) Swap(a, b *Tile) {
	if a == nil || b == nil || a == b {
		return
	}
	a.Object.Transform.Position, b.Object.Transform.Position = b.Object.Transform.Position, a.Object.Transform.Position
	a.syncCollider()
	b.syncCollider()
	m.rebuild()

	m.log.Info("tiles swapped",
		zap.Stringer("a", a.ID),
		zap.Stringer("b", b.ID),
		zap.Uint64("fingerprint", m.Partition().Fingerprint()))
	m.OnSwap.Invoke(SwapEvent{A: a, B: b})
}

// Rotate sets a tile's Euler rotation in degrees.
func (m *Manager) Rotate(t *Tile, rotation rl.Vector3) {
	if t == nil {
		return
	}
	t.Object.Transform.Rotation = rotation
	t.syncCollider()
	m.rebuild()
	m.log.Debug("tile rotated", zap.Stringer("id", t.ID), logging.Vec3("rotation", rotation))
}

// rebuild replaces the dynamic partition with one built from every tile.
func (m *Manager) rebuild() {
	sets := make([][]physics.Triangle, len(m.tiles))
	for i, t := range m.tiles {
		sets[i] = t.world
	}
	m.partition.Store(physics.BuildPartition(sets...))
}

// Pick returns the closest tile hit by ray within the pick distance.
func (m *Manager) Pick(ray rl.Ray) (*Tile, physics.RaycastHit, bool) {
	var (
		best    *Tile
		bestHit physics.RaycastHit
	)
	maxDistance := m.cfg.PickDistance
	for _, t := range m.tiles {
		if hit, ok := t.raycast(ray, maxDistance); ok {
			best, bestHit = t, hit
			maxDistance = hit.Distance
		}
	}
	return best, bestHit, best != nil
}

// Select runs one step of the swap puzzle: the first pick highlights a
// tile, the second swaps it with the newly picked one. Picking the
// highlighted tile again drops the selection.
func (m *Manager) Select(ray rl.Ray) SelectResult {
	hit, _, ok := m.Pick(ray)
	if !ok {
		return SelectMissed
	}

	if m.selected == nil {
		m.selected = hit
		m.restore = hit.Material
		hit.Material = m.cfg.HighlightMaterial
		m.log.Debug("tile selected", zap.Stringer("id", hit.ID))
		m.OnSelect.Invoke(hit)
		return SelectPending
	}

	pending := m.selected
	m.ClearSelection()
	if pending == hit {
		return SelectCleared
	}
	m.Swap(pending, hit)
	return SelectSwapped
}

// ClearSelection restores the highlighted tile and forgets it.
func (m *Manager) ClearSelection() {
	if m.selected == nil {
		return
	}
	m.selected.Material = m.restore
	m.selected = nil
	m.restore = ""
}

// Reset drops every tile and publishes an empty partition.
func (m *Manager) Reset() {
	m.ClearSelection()
	for _, t := range m.tiles {
		if m.scene != nil {
			m.scene.RemoveGameObject(t.Object)
		} else {
			m.root.RemoveChild(t.Object)
		}
	}
	m.tiles = nil
	m.byID = make(map[uuid.UUID]*Tile)
	m.partition.Store(physics.NewPartition())
}
