package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pilltoast/internal/color"
	"github.com/jmylchreest/pilltoast/internal/style"
)

func TestStyleConfig_ApplyKeepsUnsetFields(t *testing.T) {
	base := style.Defaults()[style.Fail]

	st, err := StyleConfig{Text: "#000"}.Apply(base)
	require.NoError(t, err)

	assert.Equal(t, base.Background, st.Background)
	assert.Equal(t, color.Black, st.Text)
	assert.Equal(t, base.Font, st.Font)
	require.NotNil(t, st.Icon)
	assert.Equal(t, base.Icon.Name, st.Icon.Name)
}

func TestStyleConfig_ApplyIcon(t *testing.T) {
	base := style.Defaults()[style.Success]

	st, err := StyleConfig{Icon: IconNone}.Apply(base)
	require.NoError(t, err)
	assert.False(t, st.HasIcon())
	assert.True(t, base.HasIcon(), "base must not change")

	st, err = StyleConfig{Glyph: "+"}.Apply(base)
	require.NoError(t, err)
	require.NotNil(t, st.Icon)
	assert.Equal(t, "+", st.Icon.Glyph)
	assert.Equal(t, base.Icon.Name, st.Icon.Name)
	assert.NotEqual(t, "+", base.Icon.Glyph)

	info := style.Defaults()[style.Info]
	st, err = StyleConfig{Icon: "dialog-information-symbolic"}.Apply(info)
	require.NoError(t, err)
	assert.True(t, st.HasIcon())
}

func TestStyleConfig_ApplyFont(t *testing.T) {
	st, err := StyleConfig{FontFamily: "Inter", FontSize: 18, LineHeight: 24}.Apply(style.Defaults()[style.Info])
	require.NoError(t, err)
	assert.Equal(t, style.Font{Family: "Inter", Size: 18, LineHeight: 24}, st.Font)
}

func TestFromStyle_RoundTrip(t *testing.T) {
	for name, st := range style.Defaults() {
		t.Run(name, func(t *testing.T) {
			got, err := FromStyle(st).Apply(style.Defaults()[style.Info])
			require.NoError(t, err)
			got.Name = st.Name
			assert.Equal(t, st, got)
		})
	}
}

func TestConfig_ApplyStyles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Presets[style.Warn] = StyleConfig{Background: "#FFA500"}
	cfg.Styles["brand"] = StyleConfig{Background: "#336699"}

	reg := style.NewRegistry()
	reg.Set("stale", style.Defaults()[style.Info])
	require.NoError(t, cfg.ApplyStyles(reg))

	warn := reg.Preset(style.Warn)
	assert.Equal(t, color.MustParse("#FFA500"), warn.Background)
	assert.True(t, warn.HasIcon())

	brand, ok := reg.Get("brand")
	require.True(t, ok)
	assert.Equal(t, "brand", brand.Name)
	assert.Equal(t, color.White, brand.Text)

	_, ok = reg.Get("stale")
	assert.False(t, ok, "styles not in config are dropped")
	assert.Equal(t, []string{"info", "success", "fail", "warn", "brand"}, reg.Names())
}

func TestConfig_ApplyStylesLeavesRegistryOnError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Styles["broken"] = StyleConfig{Background: "blue"}

	reg := style.NewRegistry()
	reg.Set("keep", style.Defaults()[style.Info])
	require.Error(t, cfg.ApplyStyles(reg))

	_, ok := reg.Get("keep")
	assert.True(t, ok)
}
