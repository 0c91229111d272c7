package playing

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"maps"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/locomotion/internal/domain/entity"
	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/ecs"
	"github.com/younwookim/locomotion/internal/infrastructure/config"
)

// spriteSheets resolves the current animation frame of each character to a
// sheet sub-image. Sheets load lazily on first draw.
type spriteSheets struct {
	loader   *config.Loader
	entities *config.EntitiesConfig
	images   map[string]*ebiten.Image
}

func newSpriteSheets(loader *config.Loader, entities *config.EntitiesConfig) *spriteSheets {
	return &spriteSheets{
		loader:   loader,
		entities: entities,
		images:   make(map[string]*ebiten.Image),
	}
}

// sprite returns the sheet key and sprite config of a character
func (s *spriteSheets) sprite(w *ecs.World, id ecs.EntityID) (string, config.SpriteConfig, bool) {
	if e := w.Enemies[id]; e != nil {
		cfg, ok := s.entities.Enemies[e.Kind]
		return "enemy:" + e.Kind, cfg.Sprite, ok
	}
	if w.Players[id] != nil {
		return "player", s.entities.Player.Sprite, true
	}
	return "", config.SpriteConfig{}, false
}

// source returns the sheet rectangle of the character's current frame.
// sized is false when the character has no frame size configured; ok is
// false when the clip draws nothing.
func (s *spriteSheets) source(w *ecs.World, id ecs.EntityID) (rect image.Rectangle, sized, ok bool) {
	_, sprite, found := s.sprite(w, id)
	if !found || sprite.FrameWidth <= 0 || sprite.FrameHeight <= 0 {
		return image.Rectangle{}, false, false
	}
	c, _ := w.Character(id)
	rect, ok = c.Playback().SourceRect(sprite.FrameWidth, sprite.FrameHeight)
	return rect, true, ok
}

// frame returns the sub-image to draw for id. sized is false when the
// character should be drawn as a plain box instead.
func (s *spriteSheets) frame(w *ecs.World, id ecs.EntityID) (img *ebiten.Image, sized bool) {
	rect, sized, ok := s.source(w, id)
	if !sized || !ok {
		return nil, sized
	}
	key, sprite, _ := s.sprite(w, id)
	sheet := s.sheet(key, sprite)
	if !rect.In(sheet.Bounds()) {
		return nil, true
	}
	return sheet.SubImage(rect).(*ebiten.Image), true
}

func (s *spriteSheets) sheet(key string, sprite config.SpriteConfig) *ebiten.Image {
	if img, ok := s.images[key]; ok {
		return img
	}
	var src image.Image = placeholderSheet(sprite)
	if sprite.Sheet != "" && s.loader != nil {
		img, err := s.loader.LoadSheet(sprite.Sheet)
		if err != nil {
			log.Printf("%s: %v, using placeholder", key, err)
		} else {
			src = img
		}
	}
	img := ebiten.NewImageFromImage(src)
	s.images[key] = img
	return img
}

// placeholderSheet lays out one cell per animation frame, colored by state
// and shaded by frame index
func placeholderSheet(sprite config.SpriteConfig) *image.RGBA {
	fw, fh := max(sprite.FrameWidth, 1), max(sprite.FrameHeight, 1)
	cols, rows := 1, 1
	for _, a := range sprite.Animations {
		cols = max(cols, a.Frames)
		rows = max(rows, a.Row+1)
	}

	sheet := image.NewRGBA(image.Rect(0, 0, cols*fw, rows*fh))
	for _, name := range slices.Sorted(maps.Keys(sprite.Animations)) {
		st, ok := locomotion.ParseState(name)
		if !ok {
			continue
		}
		a := sprite.Animations[name]
		for f := 0; f < a.Frames; f++ {
			cell := image.Rect(f*fw, a.Row*fh, (f+1)*fw, (a.Row+1)*fh)
			draw.Draw(sheet, cell, image.NewUniform(frameColor(stateColors[st], f)), image.Point{}, draw.Src)
		}
	}
	return sheet
}

func frameColor(base color.RGBA, frame int) color.RGBA {
	k := 1 - 0.15*float64(frame%4)
	return color.RGBA{
		R: uint8(float64(base.R) * k),
		G: uint8(float64(base.G) * k),
		B: uint8(float64(base.B) * k),
		A: base.A,
	}
}

// frameGeoM scales a src-sized frame onto the character box at (x, y),
// mirrored when the character faces left
func frameGeoM(src image.Rectangle, c *entity.Character, x, y float64) ebiten.GeoM {
	var g ebiten.GeoM
	if c.Facing() == locomotion.Left {
		g.Scale(-1, 1)
		g.Translate(float64(src.Dx()), 0)
	}
	g.Scale(c.W/float64(src.Dx()), c.H/float64(src.Dy()))
	g.Translate(x, y)
	return g
}
