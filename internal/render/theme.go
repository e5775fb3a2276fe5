package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/roster"
)

// Theme holds the glyphs used for tiles and combatants. Glyphs may be one or
// two columns wide; every map cell is drawn two columns wide.
type Theme struct {
	Floor    string
	Open     string
	Wall     string
	Wizard   string
	Warrior  string
	Enemy    string
	Defeated string
	Option   string
	Cursor   string
}

// ASCII draws with plain characters.
var ASCII = Theme{
	Floor:    ".",
	Open:     ",",
	Wall:     "#",
	Wizard:   "W",
	Warrior:  "R",
	Enemy:    "e",
	Defeated: "x",
	Option:   "+",
	Cursor:   "@",
}

// Emoji draws with double-width emoji for terminals that support them.
var Emoji = Theme{
	Floor:    "⬛",
	Open:     "🟫",
	Wall:     "🧱",
	Wizard:   "🧙",
	Warrior:  "🛡",
	Enemy:    "👹",
	Defeated: "💀",
	Option:   "🟩",
	Cursor:   "🔶",
}

func (t Theme) tile(k grid.TileKind) string {
	switch k {
	case grid.Wall:
		return t.Wall
	case grid.Open:
		return t.Open
	default:
		return t.Floor
	}
}

func (t Theme) combatant(c *roster.Combatant) string {
	if c.Defeated() {
		return t.Defeated
	}
	switch c.Role() {
	case roster.RoleWizard:
		return t.Wizard
	case roster.RoleWarrior:
		return t.Warrior
	default:
		return t.Enemy
	}
}

var (
	styleBase     = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleTile     = styleBase.Foreground(tcell.ColorGray)
	stylePlayer   = styleBase.Foreground(tcell.ColorAqua).Bold(true)
	styleEnemy    = styleBase.Foreground(tcell.ColorRed).Bold(true)
	styleDefeated = styleBase.Foreground(tcell.ColorDarkGray)
	styleOption   = styleBase.Foreground(tcell.ColorGreen)
	styleCursor   = styleBase.Foreground(tcell.ColorYellow).Bold(true)
	styleHUD      = styleBase.Foreground(tcell.ColorWhite)
	styleBanner   = styleBase.Foreground(tcell.ColorYellow).Bold(true)
)
