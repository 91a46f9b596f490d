package style

import (
	"errors"
	"slices"
	"sync"
)

// ErrUnknownStyle is returned when a style name is not registered.
var ErrUnknownStyle = errors.New("unknown style")

// Registry maps style names to styles. It holds the four presets plus any
// custom styles registered by name. Changes are visible to every later
// lookup; concurrent writers to the same name are last-writer-wins.
type Registry struct {
	mu     sync.RWMutex
	styles map[string]Style
}

// NewRegistry returns a registry holding the built-in presets.
func NewRegistry() *Registry {
	return &Registry{styles: Defaults()}
}

// Get returns the style registered under name.
func (r *Registry) Get(name string) (Style, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.styles[name]
	return s.clone(), ok
}

// Preset returns the named style, falling back to info.
func (r *Registry) Preset(name string) Style {
	if s, ok := r.Get(name); ok {
		return s
	}
	s, _ := r.Get(Info)
	return s
}

// Set registers s under name, replacing any previous entry.
func (r *Registry) Set(name string, s Style) {
	s = s.clone()
	s.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[name] = s
}

// SetIcon replaces the icon of an existing style. A nil icon removes it.
func (r *Registry) SetIcon(name string, icon *Icon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.styles[name]
	if !ok {
		return ErrUnknownStyle
	}
	r.styles[name] = s.WithIcon(icon)
	return nil
}

// Delete removes a custom style. Presets are restored to their defaults
// instead of being removed.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if def, ok := Defaults()[name]; ok {
		r.styles[name] = def
		return
	}
	delete(r.styles, name)
}

// Reset drops custom styles and restores the presets.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles = Defaults()
}

// Names returns the presets in display order followed by custom styles
// sorted by name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := slices.Clone(PresetNames)
	var custom []string
	for name := range r.styles {
		if !IsPreset(name) {
			custom = append(custom, name)
		}
	}
	slices.Sort(custom)
	return append(names, custom...)
}

// IsPreset reports whether name is one of the built-in presets.
func IsPreset(name string) bool {
	return slices.Contains(PresetNames, name)
}
