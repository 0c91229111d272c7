// Package playing provides the locomotion sandbox scene.
package playing

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/locomotion/internal/application/replay"
	"github.com/younwookim/locomotion/internal/application/scene"
	"github.com/younwookim/locomotion/internal/application/state"
	"github.com/younwookim/locomotion/internal/application/system"
	"github.com/younwookim/locomotion/internal/domain/entity"
	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/ecs"
	"github.com/younwookim/locomotion/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG     = color.RGBA{26, 26, 46, 255}
	colorWall   = color.RGBA{80, 80, 100, 255}
	colorSpike  = color.RGBA{200, 50, 50, 255}
	colorFacing = color.RGBA{255, 255, 255, 200}
	colorBox    = color.RGBA{255, 255, 0, 96}

	stateColors = map[locomotion.State]color.RGBA{
		locomotion.StateFalling:  {100, 160, 220, 255},
		locomotion.StateStanding: {100, 200, 100, 255},
		locomotion.StateWalking:  {160, 220, 80, 255},
		locomotion.StateJumping:  {240, 200, 80, 255},
		locomotion.StateDying:    {200, 100, 100, 255},
		locomotion.StateDead:     {90, 90, 90, 255},
	}
)

// ErrNoLoader is returned by Reload when the scene was built without a loader
var ErrNoLoader = errors.New("no config loader")

// CueSink receives the player's transitions
type CueSink interface {
	OnTransition(t locomotion.Transition)
}

// Commands are the scene-level keys pressed this frame
type Commands struct {
	Pause   bool
	Kill    bool
	Restart bool
	Quit    bool
}

// Playing is the sandbox scene: one stage, one player and its enemies
type Playing struct {
	loader   *config.Loader
	config   *config.GameConfig
	stageCfg *config.StageConfig
	stage    *entity.Stage
	state    state.GameState
	world    *ecs.World
	sim      *system.Simulation
	input    *system.InputSystem
	cues     CueSink
	sheets   *spriteSheets
	screenW  int
	screenH  int

	last        locomotion.Transition
	transitions int

	// Input recording
	recorder   *replay.Recorder
	recordPath string
}

// New creates the sandbox. loader may be nil, in which case Reload fails.
// cues may be nil.
func New(loader *config.Loader, cfg *config.GameConfig, stageCfg *config.StageConfig, cues CueSink) (*Playing, error) {
	p := &Playing{
		loader:   loader,
		config:   cfg,
		stageCfg: stageCfg,
		input:    system.NewInputSystem(cfg.Settings.Input),
		cues:     cues,
		sheets:   newSpriteSheets(loader, cfg.Entities),
		screenW:  cfg.Settings.Display.ScreenWidth,
		screenH:  cfg.Settings.Display.ScreenHeight,
	}
	if err := p.restart(); err != nil {
		return nil, err
	}
	return p, nil
}

// Update implements scene.Scene
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	in := system.InputState{}
	if p.state == state.StatePlaying {
		in = p.input.GetInput()
	}
	cmd := readCommands()
	if p.recorder != nil && p.state == state.StatePlaying && !cmd.Pause && !cmd.Quit {
		p.recorder.RecordFrame(in, cmd.Kill)
	}
	if err := p.step(dt, cmd, in); err != nil {
		return nil, err
	}
	return nil, nil
}

func readCommands() Commands {
	return Commands{
		Pause:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Kill:    inpututil.IsKeyJustPressed(ebiten.KeyK),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Quit:    inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
}

func (p *Playing) step(dt float64, cmd Commands, in system.InputState) error {
	if cmd.Quit {
		return scene.ErrQuit
	}

	switch p.state {
	case state.StatePlaying, state.StatePaused:
		if cmd.Pause {
			p.state = p.state.TogglePause()
			p.input.Reset()
			return nil
		}
	case state.StateGameOver:
		if cmd.Restart {
			return p.restart()
		}
	}

	if p.state == state.StatePlaying {
		id := p.world.PlayerID
		p.sim.Push(p.input.Update(id, in)...)
		if cmd.Kill {
			p.sim.Push(system.KillIntent{EntityID: id})
		}
	}

	if p.state.Simulates() {
		p.sim.Step(dt)
	}

	if p.state == state.StatePlaying {
		if pl := p.world.Player(); pl == nil || pl.IsDead() {
			p.state = state.StateGameOver
		}
	}
	return nil
}

func (p *Playing) restart() error {
	stage, err := system.LoadStage(p.stageCfg)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	if err := system.SpawnCharacters(world, p.stageCfg, p.config); err != nil {
		return err
	}
	for _, id := range world.IDs() {
		c, _ := world.Character(id)
		c.OnTransition = p.onTransition
	}

	p.stage = stage
	p.world = world
	p.sim = system.NewSimulation(world, stage)
	p.input.Reset()
	p.state = state.StatePlaying
	p.transitions = 0

	if p.recordPath != "" {
		p.recorder = replay.NewRecorder(p.stageCfg.ID, p.config.Settings.Display.Framerate)
	}
	return nil
}

// Record starts recording input to path. The file is written when the scene
// exits; a restart starts a fresh recording.
func (p *Playing) Record(path string) {
	p.recordPath = path
	p.recorder = replay.NewRecorder(p.stageCfg.ID, p.config.Settings.Display.Framerate)
	log.Printf("Recording enabled: %s", path)
}

// RunReplay feeds every recorded frame through the simulation
func (p *Playing) RunReplay(r *replay.Replayer) error {
	for {
		f, ok := r.Next()
		if !ok {
			return nil
		}
		if err := p.step(r.DT(), Commands{Kill: f.K}, f.Input()); err != nil {
			return err
		}
	}
}

func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recordPath == "" {
		return
	}
	if err := p.recorder.Save(p.recordPath); err != nil {
		log.Printf("Failed to save recording: %v", err)
		return
	}
	log.Printf("Recording saved: %s (%d frames)", p.recordPath, p.recorder.FrameCount())
}

func (p *Playing) onTransition(c *entity.Character, t locomotion.Transition) {
	if p.config.Settings.Debug.LogTransitions {
		log.Printf("%s: %s -> %s", c.Name, t.From, t.To)
	}

	pl := p.world.Player()
	if pl == nil || &pl.Character != c {
		return
	}
	p.last = t
	p.transitions++
	if p.cues != nil {
		p.cues.OnTransition(t)
	}
}

// Reload re-reads the config file at path. Entity tables are applied to the
// live characters; archetype and stage edits restart the stage.
func (p *Playing) Reload(path string) error {
	if p.loader == nil {
		return ErrNoLoader
	}

	name := filepath.Base(path)
	switch {
	case name == "settings.json":
		settings, err := p.loader.LoadSettings()
		if err != nil {
			return err
		}
		p.config.Settings = settings
		p.input = system.NewInputSystem(settings.Input)
		return nil

	case name == "entities.json":
		entities, err := p.loader.LoadEntities()
		if err != nil {
			return err
		}
		if err := system.ApplyEntities(p.world, entities); err != nil {
			return err
		}
		p.config.Entities = entities
		p.sheets = newSpriteSheets(p.loader, entities)
		return nil

	case name == "archetypes.yaml" || name == "archetypes.yml":
		archetypes, err := p.loader.LoadArchetypes()
		if err != nil {
			return err
		}
		prev := p.config.Archetypes
		p.config.Archetypes = archetypes
		if err := p.restart(); err != nil {
			p.config.Archetypes = prev
			return err
		}
		return nil

	case filepath.Base(filepath.Dir(path)) == "stages":
		id := strings.TrimSuffix(name, filepath.Ext(name))
		if id != p.stageCfg.ID {
			return nil
		}
		stageCfg, err := p.loader.LoadStage(id)
		if err != nil {
			return err
		}
		prev := p.stageCfg
		p.stageCfg = stageCfg
		if err := p.restart(); err != nil {
			p.stageCfg = prev
			return err
		}
		return nil
	}
	return nil
}

// Draw renders the sandbox
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := p.camera()

	p.drawTiles(screen, camX, camY)
	p.drawCharacters(screen, camX, camY)
	p.drawHUD(screen)

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateGameOver:
		p.drawGameOverOverlay(screen)
	}
}

// camera centers the player and clamps to the stage bounds
func (p *Playing) camera() (int, int) {
	pl := p.world.Player()
	if pl == nil {
		return 0, 0
	}
	stageW, stageH := p.stage.PixelSize()
	return clampCamera(int(pl.X+pl.W/2)-p.screenW/2, stageW-p.screenW),
		clampCamera(int(pl.Y+pl.H/2)-p.screenH/2, stageH-p.screenH)
}

func clampCamera(v, hi int) int {
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}

func (p *Playing) drawTiles(screen *ebiten.Image, camX, camY int) {
	ts := p.stage.TileSize
	startX, startY := camX/ts, camY/ts
	endX := (camX+p.screenW)/ts + 1
	endY := (camY+p.screenH)/ts + 1

	for ty := startY; ty <= endY && ty < p.stage.Height; ty++ {
		for tx := startX; tx <= endX && tx < p.stage.Width; tx++ {
			var c color.Color
			switch p.stage.GetTile(tx, ty).Type {
			case entity.TileWall:
				c = colorWall
			case entity.TileSpike:
				c = colorSpike
			default:
				continue
			}
			ebitenutil.DrawRect(screen, float64(tx*ts-camX), float64(ty*ts-camY), float64(ts), float64(ts), c)
		}
	}
}

func (p *Playing) drawCharacters(screen *ebiten.Image, camX, camY int) {
	for _, id := range p.world.IDs() {
		c, _ := p.world.Character(id)
		x := c.X - float64(camX)
		y := c.Y - float64(camY)

		img, sized := p.sheets.frame(p.world, id)
		switch {
		case img != nil:
			op := &ebiten.DrawImageOptions{GeoM: frameGeoM(img.Bounds(), c, x, y)}
			screen.DrawImage(img, op)
		case !sized:
			ebitenutil.DrawRect(screen, x, y, c.W, c.H, stateColors[c.State()])
		}

		// facing marker
		fx := x + c.W - 3
		if c.Facing() == locomotion.Left {
			fx = x + 1
		}
		ebitenutil.DrawRect(screen, fx, y+3, 2, 2, colorFacing)

		if p.config.Settings.Debug.ShowBoxes {
			ebitenutil.DrawRect(screen, x, y, c.W, 1, colorBox)
			ebitenutil.DrawRect(screen, x, y+c.H-1, c.W, 1, colorBox)
		}
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	pl := p.world.Player()
	if pl == nil {
		return
	}
	text := fmt.Sprintf("%s  facing %s  frame %d  jump %.2f  enemies %d\n%s -> %s (%d)",
		pl.State(), pl.Facing(), pl.Playback().Frame(), pl.JumpTimer, p.world.CountEnemies(),
		p.last.From, p.last.To, p.transitions)
	ebitenutil.DebugPrintAt(screen, text, 4, p.screenH-30)
	ebitenutil.DebugPrint(screen, "A/D: Move | W/Space: Jump | K: Kill | ESC: Pause | Q: Quit")
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)
	ebitenutil.DebugPrintAt(screen, "PAUSED\n\nPress ESC to resume", p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawGameOverOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{100, 0, 0, 120}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)
	ebitenutil.DebugPrintAt(screen, "DEAD\n\nPress R to restart", p.screenW/2-50, p.screenH/2-20)
}

// OnEnter implements scene.Scene
func (p *Playing) OnEnter() {
	log.Printf("stage %s: %d characters", p.stageCfg.ID, len(p.world.Characters))
}

// OnExit implements scene.Scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// State returns the sandbox mode
func (p *Playing) State() state.GameState { return p.state }

// World returns the live world
func (p *Playing) World() *ecs.World { return p.world }
