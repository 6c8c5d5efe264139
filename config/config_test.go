package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friend95/Cerosoft.AirPoint.Client/commands"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultSettings(), settings)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "airpoint.ini")

	want := commands.Settings{
		CursorSensitivity: 2.5,
		ScrollSensitivity: 0.5,
		ZoomSensitivity:   1.25,
		GesturesEnabled:   true,
		ScrollEnabled:     false,
		ZoomEnabled:       true,
		SwipeEnabled:      false,
		DragEnabled:       true,
	}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airpoint.ini")
	content := "[pointer]\ncursor_sensitivity = 3.0\n\n[gestures]\nswipe = false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float32(3.0), settings.CursorSensitivity)
	assert.False(t, settings.SwipeEnabled)

	// untouched keys keep their defaults
	assert.Equal(t, float32(1.0), settings.ScrollSensitivity)
	assert.True(t, settings.DragEnabled)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airpoint.ini")
	require.NoError(t, os.WriteFile(path, []byte("[pointer\nbroken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
