// Command locoterm runs the locomotion sandbox in a terminal.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/locomotion/internal/application/system"
	"github.com/younwookim/locomotion/internal/domain/entity"
	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/ecs"
	"github.com/younwookim/locomotion/internal/infrastructure/audio"
	"github.com/younwookim/locomotion/internal/infrastructure/config"
)

// Sandbox is the terminal front end over a Simulation
type Sandbox struct {
	screen   tcell.Screen
	cfg      *config.GameConfig
	stageCfg *config.StageConfig
	sim      *system.Simulation
	input    *system.InputSystem
	hold     *system.HoldTracker
	cues     *audio.CuePlayer
	debug    bool
	status   string
}

func main() {
	configDir := flag.String("config", "cmd/game/configs", "Config directory")
	stageName := flag.String("stage", "demo", "Stage to load")
	mute := flag.Bool("mute", false, "Disable transition cues")
	debug := flag.Bool("debug", false, "Show the last transition of every character")
	flag.Parse()

	loader := config.NewLoader(*configDir)
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	stageCfg, err := loader.LoadStage(*stageName)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	s := &Sandbox{
		cfg:      cfg,
		stageCfg: stageCfg,
		input:    system.NewInputSystem(cfg.Settings.Input),
		hold:     system.NewHoldTracker(time.Duration(cfg.Settings.Input.HoldTimeout * float64(time.Second))),
		debug:    *debug,
	}

	if cfg.Settings.Audio.Enabled && !*mute {
		cues, err := audio.NewCuePlayer(cfg.Settings.Audio)
		if err != nil {
			log.Fatalf("Failed to load audio cues: %v", err)
		}
		if err := cues.Initialize(); err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			s.cues = cues
		}
	}

	if err := s.restart(); err != nil {
		log.Fatalf("Failed to create sandbox: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	s.screen = screen

	s.run()
	s.cleanup()
}

func (s *Sandbox) restart() error {
	stage, err := system.LoadStage(s.stageCfg)
	if err != nil {
		return err
	}
	world := ecs.NewWorld()
	if err := system.SpawnCharacters(world, s.stageCfg, s.cfg); err != nil {
		return err
	}
	if p := world.Player(); p != nil {
		p.OnTransition = s.onPlayerTransition
	}

	s.sim = system.NewSimulation(world, stage)
	s.input.Reset()
	s.hold.Clear()
	s.status = ""
	return nil
}

func (s *Sandbox) onPlayerTransition(c *entity.Character, t locomotion.Transition) {
	if s.debug {
		s.status = c.Name + ": " + t.From.String() + " -> " + t.To.String()
	}
	if s.cues != nil {
		s.cues.OnTransition(t)
	}
}

func (s *Sandbox) run() {
	fps := s.cfg.Settings.Display.Framerate
	if fps <= 0 {
		fps = 60
	}
	dt := 1.0 / float64(fps)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !s.handleEvent(ev, time.Now()) {
				return
			}
		case now := <-ticker.C:
			s.tick(dt, now)
			s.draw()
		}
	}
}

// handleEvent returns false when the sandbox should quit
func (s *Sandbox) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, key := translateKey(ev)
		switch cmd {
		case cmdQuit:
			return false
		case cmdRestart:
			if err := s.restart(); err != nil {
				s.status = err.Error()
			}
		case cmdKill:
			w := s.sim.World()
			s.sim.Push(system.KillIntent{EntityID: w.PlayerID})
		case cmdHold:
			s.hold.Press(key, now)
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *Sandbox) tick(dt float64, now time.Time) {
	w := s.sim.World()
	in := system.InputState{Keys: s.hold.Keys(now)}
	s.sim.Push(s.input.Update(w.PlayerID, in)...)
	s.sim.Step(dt)
}

func (s *Sandbox) draw() {
	s.screen.Clear()
	drawStage(s.screen, s.sim.Stage())
	drawCharacters(s.screen, s.sim.World(), s.sim.Stage().TileSize)

	_, h := s.screen.Size()
	line := "a/d: move  w/space: jump  k: kill  r: restart  q: quit"
	if p := s.sim.World().Player(); p != nil {
		line = p.State().String() + "  " + line
	}
	drawText(s.screen, 0, h-2, line, tcell.StyleDefault)
	drawText(s.screen, 0, h-1, s.status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	s.screen.Show()
}

func (s *Sandbox) cleanup() {
	if s.cues != nil {
		s.cues.Cleanup()
	}
	s.screen.Fini()
}
