package world

import (
	"fmt"

	"ratarch/internal/components"
	"ratarch/internal/config"
	"ratarch/internal/engine"
	"ratarch/internal/logging"
	"ratarch/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// LoadLevel replaces everything mutable with a fresh build of lvl.
func (w *World) LoadLevel(lvl *config.Level) error {
	if lvl == nil {
		return config.ErrNoLevel
	}
	if err := lvl.Validate(); err != nil {
		return fmt.Errorf("load level: %w", err)
	}

	static, err := buildMesh(lvl.Name+"_static", lvl.Static)
	if err != nil {
		return fmt.Errorf("load level %s: %w", lvl.Name, err)
	}
	kinds := make(map[string]physics.ColliderMesh, len(lvl.TileKinds))
	for kind, shapes := range lvl.TileKinds {
		mesh, err := buildMesh(kind, shapes)
		if err != nil {
			return fmt.Errorf("load level %s: tile kind %s: %w", lvl.Name, kind, err)
		}
		kinds[kind] = mesh
	}

	w.Tiles.Reset()
	w.Scene.Clear()
	w.level = lvl
	w.state = Playing
	w.goalTouching = false

	w.Static = physics.BuildPartition(static.Triangles)
	for _, t := range lvl.Tiles {
		w.Tiles.CreateTile(t.Kind, kinds[t.Kind], t.Position.Vector(), t.Rotation.Vector())
	}

	if w.Projectiles.Len() != w.tuning.Projectile.Count {
		w.Projectiles = components.NewProjectilePool(w.tuning.Projectile)
	}
	w.Projectiles.Reset()
	w.Projectiles.Attach(w.Scene)

	w.Player.Reset()
	w.Player.MoveTo(lvl.Spawn.Vector())
	w.Camera.Mode = components.FirstPerson
	w.Camera.SetAngles(0, 0)
	w.Scene.AddGameObject(w.playerObject)

	w.Collectibles.Clear()
	for i, pos := range lvl.Collectibles {
		c := w.Collectibles.Add(pos.Vector(), lvl.CollectibleSize.Vector())
		obj := engine.NewGameObject(fmt.Sprintf("Collectible_%d", i))
		obj.Tags = []string{"collectible"}
		obj.AddComponent(c)
		w.Scene.AddGameObject(obj)
	}

	w.goalRef.Clear()
	if lvl.Goal.Size != (config.Vec3{}) {
		obj := engine.NewGameObject("Goal")
		obj.Tags = []string{"goal"}
		obj.AddComponent(components.NewGoal(lvl.Goal.Position.Vector(), lvl.Goal.Size.Vector()))
		w.Scene.AddGameObject(obj)
		w.goalRef.Set(obj)
	}

	w.Scene.Start()
	w.Scene.SyncTransforms()

	w.log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("static_triangles", w.Static.TriangleCount()),
		zap.Int("tiles", len(w.Tiles.Tiles())),
		zap.Int("dynamic_triangles", w.Tiles.Partition().TriangleCount()),
		zap.Int("collectibles", len(lvl.Collectibles)),
		logging.Vec3("spawn", lvl.Spawn.Vector()))
	return nil
}

// Restart reloads the current level from its definition.
func (w *World) Restart() error {
	if w.level == nil {
		return config.ErrNoLevel
	}
	return w.LoadLevel(w.level)
}

// ExportLevel returns the loaded level with tiles at their current
// placement, ready to be written back with config.WriteLevel.
func (w *World) ExportLevel() *config.Level {
	if w.level == nil {
		return nil
	}
	out := *w.level
	out.Tiles = make([]config.TilePlacement, 0, len(w.Tiles.Tiles()))
	for _, t := range w.Tiles.Tiles() {
		out.Tiles = append(out.Tiles, config.TilePlacement{
			Kind:     t.Kind,
			Position: vec3(t.Position()),
			Rotation: vec3(t.Rotation()),
		})
	}
	return &out
}

// buildMesh merges every shape into one collider mesh.
func buildMesh(name string, shapes []config.Shape) (physics.ColliderMesh, error) {
	meshes := make([]physics.ColliderMesh, 0, len(shapes))
	for i, s := range shapes {
		switch {
		case s.Box != nil:
			meshes = append(meshes, physics.NewBoxMesh(name, s.Box.Center.Vector(), s.Box.Size.Vector(), s.Box.Rotation.Vector()))
		case s.Mesh != nil:
			verts := make([]rl.Vector3, len(s.Mesh.Vertices))
			for j, v := range s.Mesh.Vertices {
				verts[j] = v.Vector()
			}
			mesh, err := physics.NewIndexedMesh(name, verts, s.Mesh.Indices)
			if err != nil {
				return physics.ColliderMesh{}, fmt.Errorf("shape %d: %w", i, err)
			}
			meshes = append(meshes, mesh)
		default:
			return physics.ColliderMesh{}, fmt.Errorf("shape %d: %w", i, config.ErrInvalidShape)
		}
	}
	return physics.Merge(name, meshes...), nil
}

func vec3(v rl.Vector3) config.Vec3 {
	return config.Vec3{v.X, v.Y, v.Z}
}
