package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pilltoast/internal/color"
	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, style.Info, cfg.Defaults.Style)
	assert.Equal(t, toast.Bottom, cfg.Defaults.Location)
	assert.Equal(t, toast.Average, cfg.Defaults.Duration)
	assert.Equal(t, AnimationTween, cfg.Animation.Kind)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 80, cfg.Audio.Volume)
	assert.Equal(t, "system", cfg.Display.ColorScheme)
	assert.Equal(t, 400, cfg.Display.ScreenWidth)
	assert.Equal(t, 800, cfg.Display.ScreenHeight)
	assert.Equal(t, 250*time.Millisecond, cfg.Reload.Debounce.Duration())
	require.NoError(t, cfg.Validate())
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ParsesTOML(t *testing.T) {
	path := writeConfig(t, `
[defaults]
style = "brand"
location = "top"
duration = "short"

[animation]
kind = "spring"

[audio]
enabled = true
volume = 40

[display]
color_scheme = "dark"
layer = "top"
opacity = 0.9

[reload]
debounce = 500

[presets.success]
background = "#0F0"
icon = "none"

[styles.brand]
background = "#336699CC"
text = "#FFF"
font_size = 16
glyph = "★"
sound = "/usr/share/sounds/brand.ogg"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "brand", cfg.Defaults.Style)
	assert.Equal(t, toast.Top, cfg.Defaults.Location)
	assert.Equal(t, toast.Short, cfg.Defaults.Duration)
	assert.Equal(t, AnimationSpring, cfg.Animation.Kind)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 40, cfg.Audio.Volume)
	assert.Equal(t, "dark", cfg.Display.ColorScheme)
	assert.Equal(t, "top", cfg.Display.Layer)
	assert.InDelta(t, 0.9, cfg.Display.Opacity, 1e-9)
	assert.Equal(t, 500*time.Millisecond, cfg.Reload.Debounce.Duration())
	assert.Equal(t, "#0F0", cfg.Presets["success"].Background)
	assert.Equal(t, 16.0, cfg.Styles["brand"].FontSize)

	// Unset sections keep their defaults
	assert.Equal(t, 400, cfg.Display.ScreenWidth)
}

func TestLoad_CustomDuration(t *testing.T) {
	path := writeConfig(t, "[defaults]\nduration = \"4s\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, cfg.Defaults.Duration.Length())
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `this is not valid toml [`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"location", "[defaults]\nlocation = \"left\"\n"},
		{"duration", "[defaults]\nduration = \"forever\"\n"},
		{"unknown default style", "[defaults]\nstyle = \"nope\"\n"},
		{"animation kind", "[animation]\nkind = \"bounce\"\n"},
		{"volume", "[audio]\nvolume = 101\n"},
		{"color scheme", "[display]\ncolor_scheme = \"sepia\"\n"},
		{"layer", "[display]\nlayer = \"background\"\n"},
		{"opacity", "[display]\nopacity = 1.5\n"},
		{"screen", "[display]\nscreen_width = 0\n"},
		{"debounce", "[reload]\ndebounce = \"-1s\"\n"},
		{"preset name", "[presets.brand]\nbackground = \"#000\"\n"},
		{"custom shadows preset", "[styles.warn]\nbackground = \"#000\"\n"},
		{"bad colour", "[styles.brand]\nbackground = \"#12\"\n"},
		{"negative font", "[styles.brand]\nfont_size = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadColourKeepsParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "[presets.fail]\ntext = \"#GGG\"\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, color.ErrInvalidDigits)
	assert.Contains(t, err.Error(), "presets.fail")
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Defaults.Location = toast.Top
	cfg.Defaults.Duration = toast.Custom(3)
	cfg.Styles["brand"] = StyleConfig{Background: "#336699", Icon: "starred-symbolic"}

	require.NoError(t, cfg.Save(path))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, toast.Top, loaded.Defaults.Location)
	assert.Equal(t, 3*time.Second, loaded.Defaults.Duration.Length())
	assert.Equal(t, "starred-symbolic", loaded.Styles["brand"].Icon)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/pilltoast/config.toml", path)
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1500")))
	assert.Equal(t, 1500*time.Millisecond, d.Duration())

	require.NoError(t, d.UnmarshalText([]byte("2s")))
	assert.Equal(t, 2*time.Second, d.Duration())

	assert.Error(t, d.UnmarshalText([]byte("soon")))
}

func TestAnimationConfig_Animator(t *testing.T) {
	clock := toast.NewFakeClock(time.Unix(0, 0))

	assert.IsType(t, &toast.TweenAnimator{}, AnimationConfig{Kind: AnimationTween}.Animator(clock))
	assert.IsType(t, &toast.SpringAnimator{}, AnimationConfig{Kind: AnimationSpring}.Animator(clock))
}
