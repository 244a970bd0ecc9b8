package hotkey

import "testing"

func TestParseChord(t *testing.T) {
	tests := []struct {
		chord string
		want  []string
	}{
		{"ctrl+shift+space", []string{"ctrl", "shift", "space"}},
		{"Cmd+Shift+D", []string{"cmd", "shift", "d"}},
		{"Control+Option+v", []string{"ctrl", "alt", "v"}},
		{"super+space", []string{"cmd", "space"}},
		{"escape", []string{"esc"}},
		{" ctrl + d ", []string{"ctrl", "d"}},
		{"", nil},
		{"++", nil},
	}

	for _, tt := range tests {
		t.Run(tt.chord, func(t *testing.T) {
			got := parseChord(tt.chord)
			if len(got) != len(tt.want) {
				t.Fatalf("parseChord(%q) = %v, want %v", tt.chord, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseChord(%q) = %v, want %v", tt.chord, got, tt.want)
				}
			}
		})
	}
}

func TestSetChordRejectsEmpty(t *testing.T) {
	m := NewManager(func() {}, func() {})
	if err := m.SetChord(""); err == nil {
		t.Error("SetChord(\"\") must fail")
	}
	if err := m.SetChord("alt+q"); err != nil {
		t.Errorf("SetChord(alt+q): %v", err)
	}
}
