package grid

// TileKind is the static classification of a map tile.
type TileKind int

const (
	// Floor is walkable and may hold a combatant.
	Floor TileKind = iota
	// Open is terrain with no special property; not enterable by movers.
	Open
	// Wall is impassable.
	Wall
)

// String returns the lower-case tile kind name.
func (k TileKind) String() string {
	switch k {
	case Floor:
		return "floor"
	case Open:
		return "open"
	case Wall:
		return "wall"
	default:
		return "unknown"
	}
}

// Blocks reports whether a tile of kind k is a static blocker for movement.
// Every kind other than Floor blocks.
func (k TileKind) Blocks() bool {
	return k != Floor
}

// TileKindFromCode maps a level-editor integer grid value to a TileKind.
//
// Postcondition: 1 -> Open, 2 -> Wall, 3 -> Floor, anything else -> Floor.
func TileKindFromCode(code int) TileKind {
	switch code {
	case 1:
		return Open
	case 2:
		return Wall
	default:
		return Floor
	}
}
