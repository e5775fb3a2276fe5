// Package render draws a round onto a terminal screen and maps keys to turn
// commands.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/roster"
	"github.com/cory-johannsen/tactics/internal/game/turn"
)

// cellWidth is the number of screen columns per map tile.
const cellWidth = 2

// Renderer draws machine state onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	theme  Theme
}

// NewRenderer creates a Renderer for screen.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Draw renders the map, combatants, HUD and any round summary, then shows the
// frame. ui may be nil.
//
// Must run on the goroutine that owns m.
func (r *Renderer) Draw(m *turn.Machine, ui *Controller) {
	r.screen.Clear()
	g := m.Grid()
	r.drawMap(g)
	if ui != nil && m.Phase() == turn.PlayerChoosing && m.Summary() == nil {
		for _, p := range ui.Options() {
			r.putTile(p, r.theme.Option, styleOption)
		}
	}
	r.drawCombatants(m)
	if ui != nil && m.Summary() == nil {
		r.putTile(ui.Cursor(), r.theme.Cursor, styleCursor)
	}
	r.drawHUD(m, ui, g.Bounds().Height+1)
	r.screen.Show()
}

func (r *Renderer) drawMap(g *grid.Grid) {
	b := g.Bounds()
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := grid.Pos{X: x, Y: y}
			k, err := g.At(p)
			if err != nil {
				continue
			}
			r.putTile(p, r.theme.tile(k), styleTile)
		}
	}
}

// drawCombatants places each combatant. While a running phase animates, the
// acting faction is shown at its destination once the animation is half done.
// drawCombatants paints defeated combatants before living ones so a survivor
// standing on a corpse stays visible.
func (r *Renderer) drawCombatants(m *turn.Machine) {
	all := m.Table().All()
	ordered := make([]*roster.Combatant, 0, len(all))
	for _, c := range all {
		if c.Defeated() {
			ordered = append(ordered, c)
		}
	}
	for _, c := range all {
		if !c.Defeated() {
			ordered = append(ordered, c)
		}
	}
	d := m.Displayer()
	for _, c := range ordered {
		pos := c.Pos()
		if d != nil && c.Faction() == d.Phase().Faction() && d.Progress() >= 0.5 {
			pos = destination(c)
		}
		style := styleEnemy
		switch {
		case c.Defeated():
			style = styleDefeated
		case c.IsPlayer():
			style = stylePlayer
		}
		r.putTile(pos, r.theme.combatant(c), style)
	}
}

func destination(c *roster.Combatant) grid.Pos {
	a := c.Action().Effective()
	if mv, ok := a.MovePayload(); ok {
		return mv.To
	}
	if atk, ok := a.AttackPayload(); ok {
		return atk.Destination
	}
	return c.Pos()
}

func (r *Renderer) drawHUD(m *turn.Machine, ui *Controller, top int) {
	y := top
	status := fmt.Sprintf("Turn %d  Phase %s", len(m.History())+1, m.Phase())
	if d := m.Displayer(); d != nil {
		status += fmt.Sprintf("  %3.0f%%", d.Progress()*100)
	}
	r.putText(0, y, status, styleHUD)
	y++

	var selected entity.Handle
	if ui != nil {
		selected = ui.Selected()
	}
	for _, c := range m.Table().All() {
		mark := "  "
		if c.Handle() == selected {
			mark = "> "
		}
		line := fmt.Sprintf("%s%-12s HP %3.0f/%3.0f", mark, c.Name(), c.Health(), c.MaxHealth())
		if mp, ok := c.Magika(); ok {
			line += fmt.Sprintf("  MP %3.0f", mp)
		}
		if c.IsPlayer() && !c.Defeated() {
			line += "  " + c.Action().String()
		}
		style := styleHUD
		if c.Defeated() {
			style = styleDefeated
		}
		r.putText(0, y, line, style)
		y++
	}

	if s := m.Summary(); s != nil {
		y++
		r.putText(0, y, Banner(*s), styleBanner)
		y++
		r.putText(0, y, "q: quit", styleHUD)
		return
	}
	if ui != nil && ui.Message() != "" {
		y++
		r.putText(0, y, ui.Message(), styleHUD)
	}
}

// Banner is the end-of-round text.
func Banner(s turn.Summary) string {
	return fmt.Sprintf("%s! You fought for %d turns.", s.Outcome, s.Turns)
}

func (r *Renderer) putTile(p grid.Pos, glyph string, style tcell.Style) {
	r.putGlyph(p.X*cellWidth, p.Y, glyph, style)
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) < cellWidth {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

func (r *Renderer) putText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}
