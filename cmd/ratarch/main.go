// Headless runner: loads a level, plays an input script through the
// simulation and reports the outcome.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ratarch/internal/config"
	"ratarch/internal/logging"
	"ratarch/internal/tiles"
	"ratarch/internal/world"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type options struct {
	configDir string
	level     string
	script    string
	frames    int
	realtime  bool
	watch     bool
	save      string
	logLevel  string
	logFormat string
}

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "config", "assets", "directory holding tuning.yaml, levels/ and scripts/")
	flag.StringVar(&opts.level, "level", "", "level to load (defaults to the script's level or the first level)")
	flag.StringVar(&opts.script, "script", "", "input script to play (e.g. -script tutorial)")
	flag.IntVar(&opts.frames, "frames", 600, "frames to simulate when no script is given")
	flag.BoolVar(&opts.realtime, "realtime", false, "pace frames at 60 per second")
	flag.BoolVar(&opts.watch, "watch", false, "reload tuning.yaml when it changes")
	flag.StringVar(&opts.save, "save", "", "write the final tile layout to this level file")
	flag.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&opts.logFormat, "log-format", "console", "console or json")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	log, err := logging.New(opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	loader := config.NewLoader(opts.configDir)
	tuning, err := loader.LoadTuning()
	if err != nil {
		return err
	}

	var script *config.Script
	if opts.script != "" {
		if script, err = loader.LoadScript(opts.script); err != nil {
			return err
		}
	}
	level, err := pickLevel(loader, opts.level, script)
	if err != nil {
		return err
	}

	w := world.New(tuning, log)
	if err := w.LoadLevel(level); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)

	reloads := make(chan config.Tuning, 1)
	if opts.watch {
		watcher, err := config.NewWatcher(opts.configDir)
		if err != nil {
			cancel()
			return fmt.Errorf("watch %s: %w", opts.configDir, err)
		}
		g.Go(func() error {
			defer func() { _ = watcher.Close() }()
			return watchTuning(ctx, watcher, loader, reloads, log)
		})
	}

	var result simResult
	g.Go(func() error {
		defer cancel()
		var err error
		result, err = simulate(ctx, w, opts, script, reloads)
		return err
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("run finished",
		zap.String("level", level.Name),
		zap.Stringer("state", w.State()),
		zap.Int("frames", result.frames),
		zap.Int("throws", result.throws),
		zap.Int("swaps", result.swaps),
		zap.Int("collectibles_remaining", w.Collectibles.Remaining()))

	if opts.save != "" {
		if err := saveLevel(opts.save, w.ExportLevel()); err != nil {
			return err
		}
		log.Info("level saved", zap.String("path", opts.save))
	}
	return nil
}

func pickLevel(loader *config.Loader, name string, script *config.Script) (*config.Level, error) {
	if name == "" && script != nil {
		name = script.Level
	}
	if name == "" {
		names, err := loader.Levels()
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, config.ErrNoLevel
		}
		name = names[0]
	}
	return loader.LoadLevel(name)
}

// watchTuning reloads tuning on every change and hands it to the simulation.
// Only the newest tuning is kept if the simulation has not picked up the last one.
func watchTuning(ctx context.Context, watcher *config.Watcher, loader *config.Loader, out chan config.Tuning, log *zap.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(name) != config.TuningFile {
				continue
			}
			tuning, err := loader.LoadTuning()
			if err != nil {
				log.Warn("tuning reload rejected", zap.Error(err))
				continue
			}
			select {
			case <-out:
			default:
			}
			out <- tuning
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", zap.Error(err))
		}
	}
}

type simResult struct {
	frames int
	throws int
	swaps  int
}

func simulate(ctx context.Context, w *world.World, opts options, script *config.Script, reloads <-chan config.Tuning) (simResult, error) {
	const (
		frameDelta = float32(1.0 / 60)
		aspect     = float32(16.0 / 9)
	)

	var res simResult
	var ticker *time.Ticker
	if opts.realtime {
		ticker = time.NewTicker(time.Second / 60)
		defer ticker.Stop()
	}

	var rp *replayer
	if script != nil {
		rp = newReplayer(script)
	}

	for w.State() == world.Playing {
		if rp == nil && res.frames >= opts.frames {
			break
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return res, err
		}

		select {
		case tuning := <-reloads:
			if err := w.ApplyTuning(tuning); err != nil {
				return res, err
			}
		default:
		}

		in := frameInput{Yaw: w.Camera.Yaw, Pitch: w.Camera.Pitch}
		if rp != nil {
			var ok bool
			if in, ok = rp.next(); !ok {
				break
			}
		}
		w.Camera.SetAngles(in.Yaw, in.Pitch)
		look := w.Camera.Look()

		if in.ToggleView {
			w.ToggleView()
		}
		if in.Throw != nil && w.Throw(look, *in.Throw) != nil {
			res.throws++
		}
		if in.Pick != nil && w.SelectTile(*in.Pick) == tiles.SelectSwapped {
			res.swaps++
		}
		if in.Click != nil && w.Click(in.Click[0], in.Click[1], aspect) == tiles.SelectSwapped {
			res.swaps++
		}
		w.Frame(frameDelta, in.Input, look)
		res.frames++
	}
	return res, nil
}

func saveLevel(path string, lvl *config.Level) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save level: %w", err)
	}
	if err := config.WriteLevel(f, lvl); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
