// Package viewer runs the interactive terminal preview.
package viewer

// Mode selects what the viewer shows.
type Mode int

const (
	// ModeLevel shows the composed level.
	ModeLevel Mode = iota
	// ModeCave shows a standalone cellular automaton grid that can be
	// stepped one generation at a time.
	ModeCave
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeLevel:
		return "level"
	case ModeCave:
		return "cave"
	default:
		return "unknown"
	}
}

// ParseMode returns the mode named s.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "level":
		return ModeLevel, true
	case "cave":
		return ModeCave, true
	default:
		return ModeLevel, false
	}
}
