package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// TuningFile is the tuning file name inside a config directory.
const TuningFile = "tuning.yaml"

// LevelDir holds one YAML file per level.
const LevelDir = "levels"

// Loader loads tuning and level files using the fs.FS interface
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader rooted at a directory on disk
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a loader from any fs.FS
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadTuning reads tuning.yaml over the defaults. A missing file yields the defaults.
func (l *Loader) LoadTuning() (Tuning, error) {
	cfg := Default()

	data, err := fs.ReadFile(l.fsys, TuningFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read %s: %w", TuningFile, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse %s: %w", TuningFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", TuningFile, err)
	}
	return cfg, nil
}

// LoadLevel reads levels/<name>.yaml.
func (l *Loader) LoadLevel(name string) (*Level, error) {
	p := path.Join(LevelDir, name+".yaml")
	f, err := l.fsys.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoLevel, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open level %s: %w", name, err)
	}
	defer f.Close()

	var lvl Level
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&lvl); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = name
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &lvl, nil
}

// Levels lists the level names available to LoadLevel, sorted.
func (l *Loader) Levels() ([]string, error) {
	matches, err := fs.Glob(l.fsys, path.Join(LevelDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".yaml"))
	}
	return names, nil
}
