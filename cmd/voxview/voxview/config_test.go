package voxview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/CanisArtorus/Voreeal/volume"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxview.ini")
	data := "[viewer]\naxis = x\nmode = half\nshowStatus = false\nbackground = #102030\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Axis != volume.AxisX {
		t.Errorf("expected axis X, got %v", cfg.Axis)
	}
	if cfg.Mode != ModeHalf {
		t.Errorf("expected half mode, got %v", cfg.Mode)
	}
	if cfg.ShowStatus {
		t.Error("expected status bar disabled")
	}
	if cfg.Background != tcell.NewRGBColor(0x10, 0x20, 0x30) {
		t.Errorf("expected background #102030, got %v", cfg.Background)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxview.ini")
	if err := os.WriteFile(path, []byte("[viewer]\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.Axis != def.Axis || cfg.Mode != def.Mode || cfg.ShowStatus != def.ShowStatus || cfg.Background != def.Background {
		t.Errorf("expected defaults for empty config, got %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.ini"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigBadBackground(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxview.ini")
	if err := os.WriteFile(path, []byte("[viewer]\nbackground = nope\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed background color")
	}
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxview.ini")

	orig := &Config{
		Axis:       volume.AxisY,
		Mode:       ModeHalf,
		ShowStatus: false,
		Background: tcell.NewRGBColor(32, 32, 40),
	}
	if err := orig.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Axis != orig.Axis {
		t.Errorf("expected axis %v, got %v", orig.Axis, loaded.Axis)
	}
	if loaded.Mode != orig.Mode {
		t.Errorf("expected mode %v, got %v", orig.Mode, loaded.Mode)
	}
	if loaded.ShowStatus != orig.ShowStatus {
		t.Errorf("expected showStatus %t, got %t", orig.ShowStatus, loaded.ShowStatus)
	}
	if loaded.Background != orig.Background {
		t.Errorf("expected background %v, got %v", orig.Background, loaded.Background)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    tcell.Color
		wantErr bool
	}{
		{"with hash", "#FF8000", tcell.NewRGBColor(255, 128, 0), false},
		{"without hash", "102030", tcell.NewRGBColor(0x10, 0x20, 0x30), false},
		{"lowercase", "#a0b0c0", tcell.NewRGBColor(0xA0, 0xB0, 0xC0), false},
		{"too short", "#FFF", 0, true},
		{"not hex", "#GGHHII", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseAxis(t *testing.T) {
	tests := []struct {
		input string
		want  volume.Axis
	}{
		{"x", volume.AxisX},
		{"X", volume.AxisX},
		{"y", volume.AxisY},
		{"z", volume.AxisZ},
		{"", volume.AxisZ},
		{"sideways", volume.AxisZ},
	}

	for _, tt := range tests {
		if got := ParseAxis(tt.input); got != tt.want {
			t.Errorf("ParseAxis(%q): expected %v, got %v", tt.input, tt.want, got)
		}
	}
}

func TestParseRenderMode(t *testing.T) {
	tests := []struct {
		input string
		want  RenderMode
	}{
		{"blocks", ModeBlocks},
		{"half", ModeHalf},
		{"Half", ModeHalf},
		{"h", ModeHalf},
		{"", ModeBlocks},
		{"pixels", ModeBlocks},
	}

	for _, tt := range tests {
		if got := ParseRenderMode(tt.input); got != tt.want {
			t.Errorf("ParseRenderMode(%q): expected %v, got %v", tt.input, tt.want, got)
		}
	}
}
