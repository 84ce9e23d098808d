// Package options resolves the install/force/undo switches that flow from the
// root command through command groups to a leaf command.
//
// Each layer records only the switches it sets explicitly (nil means
// "inherit"). Resolve walks layers root to leaf so the nearest explicit
// setting wins.
package options

import "fmt"

// Layer holds the explicit overrides of one level of the command tree.
type Layer struct {
	Install *bool `yaml:"install,omitempty" json:"install,omitempty"`
	Force   *bool `yaml:"force,omitempty" json:"force,omitempty"`
	Undo    *bool `yaml:"undo,omitempty" json:"undo,omitempty"`
}

// Resolved is the effective configuration handed to a leaf command.
type Resolved struct {
	Install bool
	Force   bool
	Undo    bool
}

// Bool returns a pointer to v, for building layers.
func Bool(v bool) *bool { return &v }

// IsZero reports whether the layer overrides nothing.
func (l Layer) IsZero() bool {
	return l.Install == nil && l.Force == nil && l.Undo == nil
}

// Over returns l with every unset field taken from parent.
func (l Layer) Over(parent Layer) Layer {
	out := parent
	if l.Install != nil {
		out.Install = l.Install
	}
	if l.Force != nil {
		out.Force = l.Force
	}
	if l.Undo != nil {
		out.Undo = l.Undo
	}
	return out
}

// Resolve applies layers from root to leaf on top of the zero defaults.
func Resolve(layers ...Layer) Resolved {
	var merged Layer
	for _, l := range layers {
		merged = l.Over(merged)
	}
	return Resolved{
		Install: deref(merged.Install),
		Force:   deref(merged.Force),
		Undo:    deref(merged.Undo),
	}
}

// String renders the layer for traces, marking inherited fields.
func (l Layer) String() string {
	return fmt.Sprintf("install=%s force=%s undo=%s", show(l.Install), show(l.Force), show(l.Undo))
}

// String renders the effective switches for traces.
func (r Resolved) String() string {
	return fmt.Sprintf("install=%t force=%t undo=%t", r.Install, r.Force, r.Undo)
}

func deref(b *bool) bool {
	return b != nil && *b
}

func show(b *bool) string {
	if b == nil {
		return "inherit"
	}
	return fmt.Sprintf("%t", *b)
}
