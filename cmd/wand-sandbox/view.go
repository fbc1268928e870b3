package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/spell"
)

const (
	hudRows     = 12
	colsPerUnit = 2 // Terminal cells are roughly twice as tall as wide
)

var (
	styleFloor    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(60, 60, 70))
	styleBody     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatic   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEffect   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleFading   = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleLine     = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleReticle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleEmitter  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHUDTitle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

// keyCommand decodes a key press
func keyCommand(key tcell.Key, r rune) command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return command{kind: cmdQuit}
	case tcell.KeyLeft:
		return command{kind: cmdYaw, value: -1}
	case tcell.KeyRight:
		return command{kind: cmdYaw, value: 1}
	case tcell.KeyUp:
		return command{kind: cmdPitch, value: 1}
	case tcell.KeyDown:
		return command{kind: cmdPitch, value: -1}
	case tcell.KeyRune:
	default:
		return command{}
	}

	switch {
	case r >= '1' && r <= '9':
		return command{kind: cmdSelect, value: int(r - '0')}
	case r == ' ':
		return command{kind: cmdTrigger}
	case r == 'a':
		return command{kind: cmdStrafe, value: -1}
	case r == 'd':
		return command{kind: cmdStrafe, value: 1}
	case r == 'r':
		return command{kind: cmdReset}
	case r == 'n':
		return command{kind: cmdRespawn}
	case r == 't':
		return command{kind: cmdTarget}
	case r == 'q':
		return command{kind: cmdQuit}
	}
	return command{}
}

// view projects the arena top-down: +X right, +Z up the screen
type view struct {
	screen        tcell.Screen
	width, height int
	originCol     int
	originRow     int
}

func newView(screen tcell.Screen) *view {
	v := &view{screen: screen}
	v.resize()
	return v
}

func (v *view) resize() {
	v.width, v.height = v.screen.Size()
	v.originCol = v.width / 2
	v.originRow = v.height - hudRows - 1
}

func (v *view) project(p mgl64.Vec3) (int, int) {
	col := v.originCol + int(math.Round(p.X()*colsPerUnit))
	row := v.originRow - int(math.Round(p.Z()))
	return col, row
}

func (v *view) put(p mgl64.Vec3, r rune, style tcell.Style) {
	col, row := v.project(p)
	if col < 0 || col >= v.width || row < 0 || row > v.originRow {
		return
	}
	v.screen.SetContent(col, row, r, nil, style)
}

func (v *view) text(col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if col+i >= v.width {
			return
		}
		v.screen.SetContent(col+i, row, r, nil, style)
	}
}

func (v *view) draw(sb *sandbox) {
	v.screen.Clear()

	for row := 0; row <= v.originRow; row += 2 {
		for col := 0; col < v.width; col += 4 {
			v.screen.SetContent(col, row, '·', nil, styleFloor)
		}
	}

	for _, b := range sb.world.Bodies() {
		r, style := 'o', styleBody
		if b.Kinematic {
			r = 'O'
		}
		if b.Name == "statue" {
			r, style = '#', styleStatic
		}
		v.put(b.Position, r, style)
	}

	for _, inst := range sb.spawner.Live("") {
		switch {
		case len(inst.Points) > 0:
			for _, p := range inst.Points {
				v.put(p, '.', styleLine)
			}
		case inst.Proto == effect.Prototype(sb.cfg.Aim.Reticle):
			if inst.Visible {
				v.put(inst.Pose.Position, '+', styleReticle)
			}
		case !inst.Emitting:
			v.put(inst.Pose.Position, '°', styleFading)
		default:
			v.put(inst.Pose.Position, '*', styleEffect)
		}
	}

	pose := sb.emitter.Pose()
	v.put(pose.Position, '^', styleEmitter)
	v.put(pose.Position.Add(pose.Forward()), '\'', styleEmitter)

	v.drawHUD(sb)
	v.screen.Show()
}

func (v *view) drawHUD(sb *sandbox) {
	row := v.originRow + 1
	st := sb.arb.State()

	name := "none"
	if d := st.Selected; d != nil {
		name = fmt.Sprintf("%s [%s/%s]", d.Name, d.CastType, d.Trigger)
	}
	v.text(0, row, fmt.Sprintf("spell %-36s state %-18s held %-5v in-flight %-5v aim %d pin %d",
		name, sb.orch.State(), st.TriggerHeld, st.CastInFlight, st.Aimed, st.SelectedTarget), styleHUDTitle)
	row++

	v.text(0, row, spellKeys(sb.catalog), styleHUD)
	row++
	v.text(0, row, "space trigger  arrows aim  a/d strafe  t pin target  r reset  n respawn  q quit", styleHUD)
	row++

	metrics := sb.reg.Lines()
	half := (len(metrics) + 1) / 2
	for i := 0; i < half && row < v.height; i++ {
		line := metrics[i]
		if j := i + half; j < len(metrics) {
			line = fmt.Sprintf("%-32s %s", line, metrics[j])
		}
		v.text(0, row, line, styleHUD)
		row++
	}
	for _, line := range sb.events {
		if row >= v.height {
			break
		}
		v.text(0, row, line, styleHUD)
		row++
	}
}

func spellKeys(c *spell.Catalog) string {
	var b strings.Builder
	for _, d := range c.All() {
		if d.ID > 9 {
			break
		}
		fmt.Fprintf(&b, "%d %s  ", d.ID, d.Name)
	}
	return b.String()
}
