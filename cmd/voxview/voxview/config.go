package voxview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/ini.v1"

	"github.com/CanisArtorus/Voreeal/volume"
)

// Config holds viewer settings loaded from an INI file
type Config struct {
	Axis       volume.Axis
	Mode       RenderMode
	ShowStatus bool
	Background tcell.Color
}

// DefaultConfig returns the built-in viewer settings
func DefaultConfig() *Config {
	return &Config{
		Axis:       volume.AxisZ,
		Mode:       ModeBlocks,
		ShowStatus: true,
		Background: tcell.ColorDefault,
	}
}

// LoadConfig reads viewer settings from an INI file
func LoadConfig(path string) (*Config, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	section := cfg.Section("viewer")
	config := DefaultConfig()

	config.Axis = ParseAxis(section.Key("axis").MustString("z"))
	config.Mode = ParseRenderMode(section.Key("mode").MustString("blocks"))
	config.ShowStatus = section.Key("showStatus").MustBool(true)

	if bg := section.Key("background").MustString(""); bg != "" {
		color, err := ParseHexColor(bg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse background color: %w", err)
		}
		config.Background = color
	}

	return config, nil
}

// Save writes the settings to an INI file
func (c *Config) Save(path string) error {
	cfg := ini.Empty()
	section := cfg.Section("viewer")

	section.Key("axis").SetValue(strings.ToLower(c.Axis.String()))
	section.Key("mode").SetValue(strings.ToLower(c.Mode.String()))
	section.Key("showStatus").SetValue(fmt.Sprintf("%t", c.ShowStatus))
	if c.Background != tcell.ColorDefault {
		r, g, b := c.Background.RGB()
		section.Key("background").SetValue(fmt.Sprintf("#%02X%02X%02X", r, g, b))
	}

	return cfg.SaveTo(path)
}

// ParseAxis maps an axis name to a slicing axis, defaulting to Z
func ParseAxis(s string) volume.Axis {
	switch strings.ToLower(s) {
	case "x":
		return volume.AxisX
	case "y":
		return volume.AxisY
	default:
		return volume.AxisZ
	}
}

// ParseRenderMode maps a mode name to a render mode, defaulting to blocks
func ParseRenderMode(s string) RenderMode {
	switch strings.ToLower(s) {
	case "half", "h":
		return ModeHalf
	default:
		return ModeBlocks
	}
}

// ParseHexColor parses "#RRGGBB" into a terminal color
func ParseHexColor(s string) (tcell.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q", s)
	}
	return tcell.NewRGBColor(int32(v>>16&0xFF), int32(v>>8&0xFF), int32(v&0xFF)), nil
}
