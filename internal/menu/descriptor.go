package menu

import "math"

// Sort positions. OrderBeginning sits just below OrderDefault, so an
// explicit order below it still sorts first. Any other int is accepted as
// given.
const (
	OrderBeginning = -1
	OrderDefault   = 0
	OrderEnd       = math.MaxInt
)

// Descriptor is the menu metadata a view type attaches to itself. The zero
// value is the default descriptor: enabled, title derived from the type name,
// default order and the file icon.
type Descriptor struct {
	Disabled bool
	// Title is a localization key looked up in the menu bundle.
	Title string
	Order int
	Icon  Icon
}

// Enabled reports whether the view should be listed.
func (d Descriptor) Enabled() bool {
	return !d.Disabled
}

// Described is implemented by views that want to appear in the menu.
type Described interface {
	MenuItem() Descriptor
}

// Icon names a glyph shown next to an entry label.
type Icon string

const (
	IconFile     Icon = "file"
	IconHome     Icon = "home"
	IconList     Icon = "list"
	IconUsers    Icon = "users"
	IconChart    Icon = "chart"
	IconInfo     Icon = "info"
	IconQuestion Icon = "question"
	IconCog      Icon = "cog"
	IconStar     Icon = "star"
	IconLock     Icon = "lock"
)

var glyphs = map[Icon]string{
	IconFile:     "▤",
	IconHome:     "⌂",
	IconList:     "☰",
	IconUsers:    "♟",
	IconChart:    "▥",
	IconInfo:     "ℹ",
	IconQuestion: "?",
	IconCog:      "⚙",
	IconStar:     "★",
	IconLock:     "⚿",
}

// Glyph returns the terminal glyph for the icon; unknown icons use the file glyph.
func (i Icon) Glyph() string {
	if g, ok := glyphs[i]; ok {
		return g
	}
	return glyphs[IconFile]
}

func (i Icon) orDefault() Icon {
	if i == "" {
		return IconFile
	}
	return i
}
