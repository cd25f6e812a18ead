package components

import rl "github.com/gen2brain/raylib-go/raylib"

var worldUp = rl.Vector3{Y: 1}

// InputState is the set of movement keys held during a frame.
type InputState struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Jump    bool
}

// LookVectors flattens a look direction onto the ground plane and returns
// the forward and right-hand side vectors. Both are zero when looking
// straight up or down.
func LookVectors(look rl.Vector3) (forward, side rl.Vector3) {
	forward = rl.Vector3Normalize(rl.Vector3{X: look.X, Z: look.Z})
	side = rl.Vector3CrossProduct(forward, worldUp)
	return forward, side
}

// LookDirection converts yaw and pitch in degrees into a unit look vector.
// Yaw 0 looks down -Z.
func LookDirection(yaw, pitch float32) rl.Vector3 {
	y := yaw * rl.Deg2rad
	p := pitch * rl.Deg2rad
	cp := cosf(p)
	return rl.Vector3{
		X: -sinf(y) * cp,
		Y: sinf(p),
		Z: -cosf(y) * cp,
	}
}
