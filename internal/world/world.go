package world

import (
	"fmt"

	"ratarch/internal/components"
	"ratarch/internal/config"
	"ratarch/internal/engine"
	"ratarch/internal/logging"
	"ratarch/internal/physics"
	"ratarch/internal/tiles"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// State is where the current level run stands.
type State int

const (
	Playing State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// World owns every body and both partitions and advances them in fixed
// sub-steps. It is driven from a single goroutine.
type World struct {
	Scene        *engine.Scene
	Static       *physics.Partition
	Tiles        *tiles.Manager
	Player       *components.Player
	Camera       *components.Camera
	Projectiles  *components.ProjectilePool
	Collectibles *components.Collectibles

	OnVictory     engine.Event
	OnLoss        engine.Event
	OnGoalBlocked engine.EventWithArg[int]

	tuning       config.Tuning
	level        *config.Level
	state        State
	goalTouching bool
	log          *zap.Logger

	playerObject *engine.GameObject
	goalRef      engine.GameObjectRef
}

func New(tuning config.Tuning, log *zap.Logger) *World {
	log = logging.OrNop(log)
	scene := engine.NewScene("Main")
	w := &World{
		Scene:        scene,
		Static:       physics.NewPartition(),
		Tiles:        tiles.NewManager(tuning.Tiles, scene, log),
		Player:       components.NewPlayer(tuning.Player, tuning.WeaponBob),
		Camera:       components.NewCamera(),
		Projectiles:  components.NewProjectilePool(tuning.Projectile),
		Collectibles: components.NewCollectibles(),
		tuning:       tuning,
		log:          log.Named("world"),
	}

	w.playerObject = engine.NewGameObject("Player")
	w.playerObject.Tags = []string{"player"}
	held := engine.NewGameObject("HeldRat")
	held.Transform.Position.Z = -0.3
	w.playerObject.AddChild(held)
	w.Player.Held = held
	w.playerObject.AddComponent(w.Player)
	w.playerObject.AddComponent(w.Camera)

	w.Collectibles.OnCollected.AddListener(func(c *components.Collectible) {
		w.log.Debug("collected",
			logging.Vec3("position", c.Bounds.Center()),
			zap.Int("remaining", w.Collectibles.Remaining()))
	})
	return w
}

func (w *World) State() State {
	return w.state
}

func (w *World) Tuning() config.Tuning {
	return w.tuning
}

// GoalObject is the render object of the goal, or nil when the level has none.
func (w *World) GoalObject() *engine.GameObject {
	return w.goalRef.Get(w.Scene)
}

// Goal is the exit component, or nil when the level has none.
func (w *World) Goal() *components.Goal {
	obj := w.GoalObject()
	if obj == nil {
		return nil
	}
	return engine.GetComponent[*components.Goal](obj)
}

// Level is the loaded level definition, or nil.
func (w *World) Level() *config.Level {
	return w.level
}

// Frame advances the simulation by one rendered frame and writes the
// resulting transforms to the scene. Frames are ignored once the level is
// won or lost.
func (w *World) Frame(frameDelta float32, in components.InputState, look rl.Vector3) {
	if w.level == nil || w.state != Playing {
		return
	}
	dt, steps := physics.SubSteps(frameDelta, w.tuning.Physics.MaxFrameDelta, w.tuning.Physics.StepsPerFrame)
	for i := 0; i < steps && w.state == Playing; i++ {
		w.step(dt, in, look)
	}
	w.Scene.Update(frameDelta)
	w.Scene.SyncTransforms()
}

func (w *World) step(dt float32, in components.InputState, look rl.Vector3) {
	gravity := w.tuning.Physics.Gravity

	w.Player.ApplyControls(dt, in, look)
	w.Player.Step(dt, gravity, w.Static, w.Tiles)

	w.Projectiles.Step(dt, gravity, w.Static, w.Tiles)
	w.Projectiles.ResolvePairs()
	w.Projectiles.ResolvePlayer(w.Player)

	w.checkObjectives()
}

func (w *World) checkObjectives() {
	w.Collectibles.CollectBox(w.Player.Bounds())
	w.Projectiles.Each(func(p *components.Projectile) {
		w.Collectibles.CollectSphere(p.Body.Collider)
	})

	goal := w.Goal()
	touching := goal != nil && goal.Touched(w.Player.Bounds())
	if touching {
		remaining := w.Collectibles.Remaining()
		if remaining <= 0 {
			w.finish(Won)
			return
		}
		if !w.goalTouching {
			w.log.Info("goal blocked", zap.Int("remaining", remaining))
			w.OnGoalBlocked.Invoke(remaining)
		}
	}
	w.goalTouching = touching

	if w.Player.Position().Y < w.tuning.Physics.KillPlaneY {
		w.finish(Lost)
	}
}

func (w *World) finish(s State) {
	w.state = s
	w.log.Info("level finished",
		zap.String("level", w.level.Name),
		zap.Stringer("state", s),
		logging.Vec3("player", w.Player.Position()))
	if s == Won {
		w.OnVictory.Invoke()
	} else {
		w.OnLoss.Invoke()
	}
}

// Throw launches the next projectile along look. holdSeconds is how long
// the throw was charged.
func (w *World) Throw(look rl.Vector3, holdSeconds float32) *components.Projectile {
	if w.level == nil || w.state != Playing {
		return nil
	}
	p := w.Projectiles.FireFrom(w.Player, look, holdSeconds)
	w.log.Debug("throw", zap.Int("slot", p.Index), logging.Vec3("velocity", p.Body.Velocity))
	return p
}

// SelectTile feeds a pick ray into the tile swap puzzle.
func (w *World) SelectTile(ray rl.Ray) tiles.SelectResult {
	if w.level == nil || w.state != Playing {
		return tiles.SelectMissed
	}
	result := w.Tiles.Select(ray)
	if result == tiles.SelectSwapped {
		w.Scene.SyncTransforms()
	}
	return result
}

// ToggleView switches between the first person and overhead views. Leaving
// the overhead view drops any pending tile selection.
func (w *World) ToggleView() components.ViewMode {
	mode := w.Camera.Toggle(w.Player.Eye())
	if mode == components.FirstPerson {
		w.Tiles.ClearSelection()
	}
	return mode
}

// Click picks a tile at a screen point in the overhead view. ndcX and ndcY
// are normalized device coordinates with y up.
func (w *World) Click(ndcX, ndcY, aspect float32) tiles.SelectResult {
	ray, ok := w.Camera.PickRay(ndcX, ndcY, aspect)
	if !ok {
		return tiles.SelectMissed
	}
	return w.SelectTile(ray)
}

// ApplyTuning swaps in new tuning between frames. The projectile count only
// changes on the next LoadLevel.
func (w *World) ApplyTuning(t config.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("apply tuning: %w", err)
	}
	if t.Projectile.Count != w.Projectiles.Len() {
		w.log.Warn("projectile count change deferred to next level load",
			zap.Int("current", w.Projectiles.Len()),
			zap.Int("requested", t.Projectile.Count))
	}
	w.tuning = t
	w.Player.SetConfig(t.Player, t.WeaponBob)
	w.Projectiles.SetConfig(t.Projectile)
	w.Tiles.SetConfig(t.Tiles)
	w.log.Info("tuning applied",
		zap.Float32("gravity", t.Physics.Gravity),
		zap.Int("steps_per_frame", t.Physics.StepsPerFrame))
	return nil
}
