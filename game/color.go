package game

// Color is the content of an intersection. Black and White are stone colors and double as
// indices into per-color tables.
type Color int8

const (
	Black Color = iota
	White
	Vacant
	OffBoard
)

var glyphs = [...]byte{'#', 'O', '.', '*'}

// Opposite returns the other stone color. It must only be called on Black or White.
func (c Color) Opposite() Color {
	return 1 - c
}

// IsStone reports whether c is Black or White.
func (c Color) IsStone() bool {
	return c == Black || c == White
}

// Glyph returns the character used for c in board diagrams.
func (c Color) Glyph() byte {
	return glyphs[c]
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Vacant:
		return "vacant"
	default:
		return "off-board"
	}
}

// ColorForGlyph parses a diagram character. The second return value is false for characters
// that do not name a color.
func ColorForGlyph(g byte) (Color, bool) {
	for i, glyph := range glyphs {
		if glyph == g {
			return Color(i), true
		}
	}
	return Vacant, false
}
