package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// BodyParams tunes how a body reacts to drag and gravity.
type BodyParams struct {
	// Damping is the exponential drag rate k in exp(-k*dt).
	Damping float32
	// AirDampingFactor scales the drag term again while airborne.
	AirDampingFactor float32
	// MaxGroundSpeed caps horizontal speed on the floor. Zero disables the cap.
	MaxGroundSpeed float32
}

// DampingTerm returns exp(-k*dt) - 1, the framerate independent drag multiplier.
func DampingTerm(k, dt float32) float32 {
	return expf(-k*dt) - 1
}

// SubSteps splits a frame into fixed steps. The frame delta is capped at
// maxDelta so one slow frame cannot move a body through thin geometry.
func SubSteps(frameDelta, maxDelta float32, steps int) (float32, int) {
	if steps < 1 {
		steps = 1
	}
	if frameDelta < 0 || !finite(frameDelta) {
		frameDelta = 0
	}
	if frameDelta > maxDelta {
		frameDelta = maxDelta
	}
	return frameDelta / float32(steps), steps
}

// Integrate advances a walking body by one step and returns the new velocity
// and the translation to apply to its collider.
func Integrate(velocity rl.Vector3, onFloor bool, dt, gravity float32, p BodyParams) (rl.Vector3, rl.Vector3) {
	damping := DampingTerm(p.Damping, dt)
	velocity = rl.Vector3Add(velocity, rl.Vector3Scale(velocity, damping))

	if !onFloor {
		velocity.Y -= gravity * dt
		velocity = rl.Vector3Add(velocity, rl.Vector3Scale(velocity, damping*p.AirDampingFactor))
	} else if p.MaxGroundSpeed > 0 {
		velocity = clampHorizontal(velocity, p.MaxGroundSpeed)
	}

	return velocity, rl.Vector3Scale(velocity, dt)
}

func clampHorizontal(v rl.Vector3, max float32) rl.Vector3 {
	flat := horizontal(v)
	speed := rl.Vector3Length(flat)
	if speed <= max {
		return v
	}
	flat = rl.Vector3Scale(rl.Vector3Normalize(flat), max)
	return rl.Vector3{X: flat.X, Y: v.Y, Z: flat.Z}
}

// ApplyDrag applies exponential drag with rate k.
func ApplyDrag(velocity rl.Vector3, k, dt float32) rl.Vector3 {
	return rl.Vector3Add(velocity, rl.Vector3Scale(velocity, DampingTerm(k, dt)))
}

// ApplyGravity accelerates the vertical component downward.
func ApplyGravity(velocity rl.Vector3, gravity, dt float32) rl.Vector3 {
	velocity.Y -= gravity * dt
	return velocity
}
