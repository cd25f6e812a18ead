package components

import (
	"ratarch/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ViewMode selects which camera the player sees through.
type ViewMode int

const (
	FirstPerson ViewMode = iota
	TopDown
)

// Camera is the player's view: a first person camera steered by mouse
// look, and an overhead orthographic camera used to pick tiles.
type Camera struct {
	engine.BaseComponent
	Mode  ViewMode
	Yaw   float32 // degrees, 0 looks down -Z
	Pitch float32 // degrees, clamped to straight up or down

	FOV           float32
	Near          float32
	Far           float32
	Sensitivity   float32 // degrees per pixel of mouse movement
	TopDownHeight float32
	TopDownSpan   float32 // world units visible top to bottom in the overhead view

	// topDownCenter is fixed when entering the overhead view.
	topDownCenter rl.Vector3
}

func NewCamera() *Camera {
	return &Camera{
		FOV:           75,
		Near:          0.1,
		Far:           500,
		Sensitivity:   0.0025 * rl.Rad2deg,
		TopDownHeight: 10,
		TopDownSpan:   40,
	}
}

// Look is the first person look direction.
func (c *Camera) Look() rl.Vector3 {
	return LookDirection(c.Yaw, c.Pitch)
}

// SetAngles points the first person camera.
func (c *Camera) SetAngles(yaw, pitch float32) {
	c.Yaw = wrapDegrees(yaw)
	c.Pitch = clampPitch(pitch)
}

// MouseLook turns the camera by a mouse movement in pixels. It does
// nothing in the overhead view.
func (c *Camera) MouseLook(dx, dy float32) {
	if c.Mode != FirstPerson {
		return
	}
	c.SetAngles(c.Yaw-dx*c.Sensitivity, c.Pitch-dy*c.Sensitivity)
}

// Toggle switches between views. The overhead view centres on eye.
func (c *Camera) Toggle(eye rl.Vector3) ViewMode {
	if c.Mode == FirstPerson {
		c.Mode = TopDown
		c.topDownCenter = rl.Vector3{X: eye.X, Y: c.TopDownHeight, Z: eye.Z}
	} else {
		c.Mode = FirstPerson
	}
	return c.Mode
}

// Camera3D builds the raylib camera for the current view.
func (c *Camera) Camera3D(eye rl.Vector3) rl.Camera3D {
	if c.Mode == TopDown {
		return rl.Camera3D{
			Position:   c.topDownCenter,
			Target:     rl.Vector3{X: c.topDownCenter.X, Z: c.topDownCenter.Z},
			Up:         rl.Vector3{Z: -1},
			Fovy:       c.TopDownSpan,
			Projection: rl.CameraOrthographic,
		}
	}
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, c.Look()),
		Up:         rl.Vector3{Y: 1},
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

// PickRay maps a point on screen in normalized device coordinates (-1..1,
// y up) to a straight down ray from the overhead camera.
func (c *Camera) PickRay(ndcX, ndcY, aspect float32) (rl.Ray, bool) {
	if c.Mode != TopDown {
		return rl.Ray{}, false
	}
	half := c.TopDownSpan / 2
	origin := rl.Vector3{
		X: c.topDownCenter.X + ndcX*half*aspect,
		Y: c.topDownCenter.Y,
		Z: c.topDownCenter.Z - ndcY*half,
	}
	return rl.NewRay(origin, rl.Vector3{Y: -1}), true
}

// SyncTransform turns the camera rig to the current yaw and pitch.
func (c *Camera) SyncTransform() {
	if g := c.GetGameObject(); g != nil {
		g.Transform.Rotation.X = c.Pitch
	}
}

// wrapDegrees maps d into [0, 360). Non-finite angles become 0.
func wrapDegrees(d float32) float32 {
	if !finitef(d) {
		return 0
	}
	d = fmodf(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

func clampPitch(p float32) float32 {
	if p != p { // NaN
		return 0
	}
	if p > 90 {
		return 90
	}
	if p < -90 {
		return -90
	}
	return p
}
