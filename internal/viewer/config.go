package viewer

import (
	"github.com/DeclanHarty/CaveGeneration/internal/config"
	"github.com/DeclanHarty/CaveGeneration/internal/presets"
)

// Config holds viewer options.
type Config struct {
	// Settings are the generator settings. Settings.Seed is the first seed
	// shown; each regeneration moves to the next one.
	Settings *config.Config
	Colors   presets.Colors
	Mode     Mode
}
