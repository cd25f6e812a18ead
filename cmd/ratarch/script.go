package main

import (
	"ratarch/internal/components"
	"ratarch/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// frameInput is everything the runner feeds the world for one frame.
type frameInput struct {
	Input      components.InputState
	Yaw        float32
	Pitch      float32
	Throw      *float32
	Pick       *rl.Ray
	Click      *[2]float32
	ToggleView bool
}

// replayer walks a script one frame at a time.
type replayer struct {
	steps []config.ScriptStep
	step  int
	frame int
}

func newReplayer(s *config.Script) *replayer {
	return &replayer{steps: s.Steps}
}

// next returns the input for the coming frame, or false once the script is done.
func (r *replayer) next() (frameInput, bool) {
	if r.step >= len(r.steps) {
		return frameInput{}, false
	}
	s := r.steps[r.step]
	in := frameInput{
		Input: components.InputState{
			Forward: s.Forward,
			Back:    s.Back,
			Left:    s.Left,
			Right:   s.Right,
			Jump:    s.Jump,
		},
		Yaw:   s.Yaw,
		Pitch: s.Pitch,
	}
	if r.frame == 0 {
		in.Throw = s.Throw
		in.Click = s.Click
		in.ToggleView = s.ToggleView
		if s.Pick != nil {
			ray := rl.NewRay(s.Pick.Origin.Vector(), rl.Vector3Normalize(s.Pick.Direction.Vector()))
			in.Pick = &ray
		}
	}

	r.frame++
	if r.frame >= s.Frames {
		r.step++
		r.frame = 0
	}
	return in, true
}
