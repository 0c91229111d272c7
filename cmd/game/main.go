package main

import (
	"flag"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/locomotion/internal/application/game"
	"github.com/younwookim/locomotion/internal/application/replay"
	"github.com/younwookim/locomotion/internal/application/scene/playing"
	"github.com/younwookim/locomotion/internal/infrastructure/audio"
	"github.com/younwookim/locomotion/internal/infrastructure/config"
)

func main() {
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	stageName := flag.String("stage", "demo", "Stage to load")
	debug := flag.Bool("debug", false, "Log every state transition")
	watch := flag.Bool("watch", false, "Reload configs when files change (requires -config)")
	mute := flag.Bool("mute", false, "Disable transition cues")
	recordPath := flag.String("record", "", "Record input to file (e.g., -record run.json)")
	replayPath := flag.String("replay", "", "Replay a recording headless and exit")
	flag.Parse()

	loader, err := newLoader(*configDir)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *debug {
		cfg.Settings.Debug.LogTransitions = true
	}

	if *replayPath != "" {
		runReplay(loader, cfg, *replayPath)
		return
	}

	stageCfg, err := loader.LoadStage(*stageName)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	var cues playing.CueSink
	if cfg.Settings.Audio.Enabled && !*mute {
		player, err := audio.NewCuePlayer(cfg.Settings.Audio)
		if err != nil {
			log.Fatalf("Failed to load audio cues: %v", err)
		}
		if err := player.Initialize(); err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			defer player.Cleanup()
			cues = player
		}
	}

	sandbox, err := playing.New(loader, cfg, stageCfg, cues)
	if err != nil {
		log.Fatalf("Failed to create sandbox: %v", err)
	}
	if *recordPath != "" {
		sandbox.Record(*recordPath)
	}

	g := game.New(sandbox, cfg.Settings.Display)

	if *watch {
		if *configDir == "" {
			log.Fatalf("-watch needs -config <dir>")
		}
		w, err := config.NewWatcher(*configDir, filepath.Join(*configDir, "stages"))
		if err != nil {
			log.Fatalf("Failed to watch configs: %v", err)
		}
		defer func() { _ = w.Close() }()
		go func() {
			for err := range w.Errors {
				log.Printf("watch: %v", err)
			}
		}()
		g.WatchReloads(w.Events)
	}

	display := cfg.Settings.Display
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Locomotion Sandbox")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func runReplay(loader *config.Loader, cfg *config.GameConfig, path string) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		log.Fatalf("Failed to load replay: %v", err)
	}
	stageCfg, err := loader.LoadStage(data.Stage)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	sandbox, err := playing.New(nil, cfg, stageCfg, nil)
	if err != nil {
		log.Fatalf("Failed to create sandbox: %v", err)
	}
	r := replay.NewReplayer(*data)
	if err := sandbox.RunReplay(r); err != nil {
		log.Fatalf("Replay failed: %v", err)
	}

	p := sandbox.World().Player()
	log.Printf("replayed %d frames: player %s at (%.1f, %.1f) facing %s, mode %s",
		r.TotalFrames(), p.State(), p.X, p.Y, p.Facing(), sandbox.State())
}
