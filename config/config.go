// Package config loads and saves the user-tunable pointer settings from an
// ini file. The core packages never read files themselves; they take a
// commands.Settings value.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/friend95/Cerosoft.AirPoint.Client/commands"
)

// DefaultPath returns the per-user settings file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "airpoint.ini"
	}
	return filepath.Join(dir, "airpoint", "airpoint.ini")
}

// Load reads settings from path. A missing file yields the defaults.
func Load(path string) (commands.Settings, error) {
	settings := commands.DefaultSettings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return settings, fmt.Errorf("load %s: %w", path, err)
	}

	pointer := cfg.Section("pointer")
	settings.CursorSensitivity = float32(pointer.Key("cursor_sensitivity").MustFloat64(float64(settings.CursorSensitivity)))
	settings.ScrollSensitivity = float32(pointer.Key("scroll_sensitivity").MustFloat64(float64(settings.ScrollSensitivity)))
	settings.ZoomSensitivity = float32(pointer.Key("zoom_sensitivity").MustFloat64(float64(settings.ZoomSensitivity)))

	gestures := cfg.Section("gestures")
	settings.GesturesEnabled = gestures.Key("enabled").MustBool(settings.GesturesEnabled)
	settings.ScrollEnabled = gestures.Key("scroll").MustBool(settings.ScrollEnabled)
	settings.ZoomEnabled = gestures.Key("zoom").MustBool(settings.ZoomEnabled)
	settings.SwipeEnabled = gestures.Key("swipe").MustBool(settings.SwipeEnabled)
	settings.DragEnabled = gestures.Key("drag").MustBool(settings.DragEnabled)

	return settings, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, settings commands.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	cfg := ini.Empty()

	pointer := cfg.Section("pointer")
	pointer.Key("cursor_sensitivity").SetValue(fmt.Sprintf("%g", settings.CursorSensitivity))
	pointer.Key("scroll_sensitivity").SetValue(fmt.Sprintf("%g", settings.ScrollSensitivity))
	pointer.Key("zoom_sensitivity").SetValue(fmt.Sprintf("%g", settings.ZoomSensitivity))

	gestures := cfg.Section("gestures")
	gestures.Key("enabled").SetValue(fmt.Sprintf("%t", settings.GesturesEnabled))
	gestures.Key("scroll").SetValue(fmt.Sprintf("%t", settings.ScrollEnabled))
	gestures.Key("zoom").SetValue(fmt.Sprintf("%t", settings.ZoomEnabled))
	gestures.Key("swipe").SetValue(fmt.Sprintf("%t", settings.SwipeEnabled))
	gestures.Key("drag").SetValue(fmt.Sprintf("%t", settings.DragEnabled))

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
