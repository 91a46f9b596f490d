package style

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pilltoast/internal/color"
)

func TestDefaults(t *testing.T) {
	presets := Defaults()
	require.Len(t, presets, 4)

	info := presets[Info]
	assert.Equal(t, color.Black, info.Background)
	assert.Equal(t, color.White, info.Text)
	assert.False(t, info.HasIcon())

	assert.Equal(t, color.RGBA{R: 0x72, G: 0xDD, B: 0x4D, A: 0xFF}, presets[Success].Background)
	assert.Equal(t, color.RGBA{R: 0xE1, G: 0x47, B: 0x47, A: 0xFF}, presets[Fail].Background)
	assert.Equal(t, color.RGBA{R: 0xF7, G: 0xC1, B: 0x1F, A: 0xFF}, presets[Warn].Background)

	for _, name := range PresetNames {
		s := presets[name]
		assert.Equal(t, name, s.Name)
		assert.True(t, s.Background.Opaque(), name)
		assert.True(t, s.Text.Opaque(), name)
		assert.Equal(t, DefaultFontSize, s.Font.Size, name)
	}
}

func TestFont_Leading(t *testing.T) {
	assert.InDelta(t, 16.8, SystemFont(14).Leading(), 1e-9)
	assert.InDelta(t, 16.8, Font{}.Leading(), 1e-9)
	assert.Equal(t, 20.0, Font{Size: 14, LineHeight: 20}.Leading())
}

func TestStyle_WithIconCopies(t *testing.T) {
	icon := &Icon{Name: "custom"}
	s := New(color.Black, color.White, SystemFont(12), icon)
	require.True(t, s.HasIcon())

	icon.Name = "mutated"
	assert.Equal(t, "custom", s.Icon.Name)

	bare := s.WithIcon(nil)
	assert.False(t, bare.HasIcon())
	assert.True(t, s.HasIcon())
}

func TestRegistry_SetIconVisibleToLaterLookups(t *testing.T) {
	r := NewRegistry()

	before, ok := r.Get(Success)
	require.True(t, ok)
	assert.Equal(t, IconSuccess.Name, before.Icon.Name)

	require.NoError(t, r.SetIcon(Success, &Icon{Name: "my-success", Glyph: "+"}))

	after, ok := r.Get(Success)
	require.True(t, ok)
	assert.Equal(t, "my-success", after.Icon.Name)

	// Values handed out earlier are not affected.
	assert.Equal(t, IconSuccess.Name, before.Icon.Name)

	assert.ErrorIs(t, r.SetIcon("missing", nil), ErrUnknownStyle)
}

func TestRegistry_GetReturnsCopies(t *testing.T) {
	r := NewRegistry()
	s, _ := r.Get(Warn)
	s.Icon.Glyph = "?"
	s.Background = color.White

	again, _ := r.Get(Warn)
	assert.Equal(t, "!", again.Icon.Glyph)
	assert.Equal(t, color.MustParse("#F7C11F"), again.Background)
}

func TestRegistry_CustomStyles(t *testing.T) {
	r := NewRegistry()
	r.Set("brand", New(color.MustParse("#336699"), color.White, SystemFont(16), nil))

	s, ok := r.Get("brand")
	require.True(t, ok)
	assert.Equal(t, "brand", s.Name)

	assert.Equal(t, []string{Info, Success, Fail, Warn, "brand"}, r.Names())

	r.Delete("brand")
	_, ok = r.Get("brand")
	assert.False(t, ok)
}

func TestRegistry_PresetFallsBackToInfo(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, Info, r.Preset("nope").Name)
	assert.Equal(t, Fail, r.Preset(Fail).Name)
}

func TestRegistry_DeleteRestoresPreset(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.SetIcon(Info, &IconWarning))

	r.Delete(Info)
	s, ok := r.Get(Info)
	require.True(t, ok)
	assert.False(t, s.HasIcon())
}

func TestRegistry_Reset(t *testing.T) {
	r := NewRegistry()
	r.Set("extra", Style{})
	require.NoError(t, r.SetIcon(Warn, nil))

	r.Reset()
	assert.Len(t, r.Names(), 4)
	s, _ := r.Get(Warn)
	assert.True(t, s.HasIcon())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.SetIcon(Info, &Icon{Glyph: "i"})
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Get(Info)
		}()
	}
	wg.Wait()

	s, _ := r.Get(Info)
	assert.Equal(t, "i", s.Icon.Glyph)
}
