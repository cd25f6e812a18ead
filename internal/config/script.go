package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// ScriptDir holds input scripts for the headless runner.
const ScriptDir = "scripts"

// Script is a recorded or hand written input sequence for one level.
type Script struct {
	Level string       `yaml:"level"`
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptStep holds the same input for Frames frames. Throw, Pick, Click
// and ToggleView act once, on the first frame of the step.
type ScriptStep struct {
	Frames  int      `yaml:"frames"`
	Forward bool     `yaml:"forward,omitempty"`
	Back    bool     `yaml:"back,omitempty"`
	Left    bool     `yaml:"left,omitempty"`
	Right   bool     `yaml:"right,omitempty"`
	Jump    bool     `yaml:"jump,omitempty"`
	Yaw     float32  `yaml:"yaw,omitempty"`   // degrees, 0 looks down -Z
	Pitch   float32  `yaml:"pitch,omitempty"` // degrees, positive looks up
	Throw   *float32 `yaml:"throw,omitempty"` // charge time in seconds
	Pick    *Ray     `yaml:"pick,omitempty"`
	// Click is a point on screen in normalized device coordinates, used
	// in the overhead view.
	Click      *[2]float32 `yaml:"click,omitempty"`
	ToggleView bool        `yaml:"toggle_view,omitempty"`
}

// Ray is a pick ray in world space.
type Ray struct {
	Origin    Vec3 `yaml:"origin"`
	Direction Vec3 `yaml:"direction"`
}

// Frames is the total length of the script.
func (s *Script) Frames() int {
	n := 0
	for _, step := range s.Steps {
		n += step.Frames
	}
	return n
}

// LoadScript reads scripts/<name>.yaml.
func (l *Loader) LoadScript(name string) (*Script, error) {
	p := path.Join(ScriptDir, name+".yaml")
	data, err := fs.ReadFile(l.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("script %s: %w", name, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", name, err)
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", name, err)
	}
	for i, step := range s.Steps {
		if step.Frames < 1 {
			return nil, fmt.Errorf("script %s: step %d: frames must be at least 1", name, i)
		}
	}
	return &s, nil
}
