package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/locomotion/internal/application/system"
	"github.com/younwookim/locomotion/internal/domain/entity"
	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/ecs"
)

type command int

const (
	cmdNone command = iota
	cmdHold
	cmdKill
	cmdRestart
	cmdQuit
)

// translateKey maps a terminal key to a command and, for cmdHold, the held key
func translateKey(ev *tcell.EventKey) (command, system.HoldKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit, 0
	case tcell.KeyLeft:
		return cmdHold, system.HoldLeft
	case tcell.KeyRight:
		return cmdHold, system.HoldRight
	case tcell.KeyUp:
		return cmdHold, system.HoldJump
	case tcell.KeyRune:
	default:
		return cmdNone, 0
	}

	switch ev.Rune() {
	case 'a', 'A':
		return cmdHold, system.HoldLeft
	case 'd', 'D':
		return cmdHold, system.HoldRight
	case 'w', 'W', ' ':
		return cmdHold, system.HoldJump
	case 'k', 'K':
		return cmdKill, 0
	case 'r', 'R':
		return cmdRestart, 0
	case 'q', 'Q':
		return cmdQuit, 0
	}
	return cmdNone, 0
}

var stateStyles = map[locomotion.State]tcell.Style{
	locomotion.StateFalling:  tcell.StyleDefault.Foreground(tcell.ColorBlue),
	locomotion.StateStanding: tcell.StyleDefault.Foreground(tcell.ColorGreen),
	locomotion.StateWalking:  tcell.StyleDefault.Foreground(tcell.ColorLime),
	locomotion.StateJumping:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	locomotion.StateDying:    tcell.StyleDefault.Foreground(tcell.ColorRed),
	locomotion.StateDead:     tcell.StyleDefault.Foreground(tcell.ColorGray),
}

// glyph returns the cell used to draw a character
func glyph(c *entity.Character, isPlayer bool) rune {
	switch {
	case c.State() == locomotion.StateDead || c.State() == locomotion.StateDying:
		return 'x'
	case !isPlayer:
		return 'e'
	case c.State() == locomotion.StateJumping || c.State() == locomotion.StateFalling:
		return '^'
	case c.Facing() == locomotion.Left:
		return '<'
	}
	return '>'
}

func tileRune(t entity.Tile) rune {
	switch t.Type {
	case entity.TileWall:
		return '#'
	case entity.TileSpike:
		return '^'
	}
	return ' '
}

func drawStage(screen tcell.Screen, stage *entity.Stage) {
	wall := tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	spike := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for ty := 0; ty < stage.Height; ty++ {
		for tx := 0; tx < stage.Width; tx++ {
			t := stage.GetTile(tx, ty)
			style := wall
			if t.Type == entity.TileSpike {
				style = spike
			}
			screen.SetContent(tx, ty, tileRune(t), nil, style)
		}
	}
}

// drawCharacters draws each character at the tile under its center
func drawCharacters(screen tcell.Screen, world *ecs.World, tileSize int) {
	ts := float64(tileSize)
	for _, id := range world.IDs() {
		c, _ := world.Character(id)
		x := int((c.X + c.W/2) / ts)
		y := int((c.Y + c.H/2) / ts)
		screen.SetContent(x, y, glyph(c, id == world.PlayerID), nil, stateStyles[c.State()])
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
