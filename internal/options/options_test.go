package options

import "testing"

func TestResolveDefaults(t *testing.T) {
	got := Resolve()
	if got != (Resolved{}) {
		t.Errorf("Resolve() = %+v, want zero", got)
	}
}

func TestResolveNearestWins(t *testing.T) {
	cases := []struct {
		name   string
		layers []Layer
		want   Resolved
	}{
		{
			name:   "group sets install, leaf inherits",
			layers: []Layer{{Install: Bool(true)}, {}},
			want:   Resolved{Install: true},
		},
		{
			name:   "leaf overrides group",
			layers: []Layer{{Install: Bool(true), Force: Bool(true)}, {Install: Bool(false)}},
			want:   Resolved{Install: false, Force: true},
		},
		{
			name:   "explicit false survives deeper inherit",
			layers: []Layer{{Force: Bool(true)}, {Force: Bool(false)}, {}},
			want:   Resolved{},
		},
		{
			name:   "independent fields",
			layers: []Layer{{Undo: Bool(true)}, {Install: Bool(true)}},
			want:   Resolved{Install: true, Undo: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.layers...); got != tc.want {
				t.Errorf("Resolve = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLayerString(t *testing.T) {
	l := Layer{Install: Bool(true)}
	if got, want := l.String(), "install=true force=inherit undo=inherit"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !(Layer{}).IsZero() {
		t.Error("empty layer should be zero")
	}
}

func TestResolvedString(t *testing.T) {
	r := Resolve(Layer{Install: Bool(true)}, Layer{Undo: Bool(true)})
	if got, want := r.String(), "install=true force=false undo=true"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
