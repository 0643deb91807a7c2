package theme

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		saved  Theme
		ok     bool
		osDark bool
		want   Theme
	}{
		{"unset follows dark os", "", false, true, Dark},
		{"unset follows light os", "", false, false, Light},
		{"saved light beats dark os", Light, true, true, Light},
		{"saved dark beats light os", Dark, true, false, Dark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.saved, tt.ok, tt.osDark); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAndToggle(t *testing.T) {
	if th, ok := Parse(" Dark "); !ok || th != Dark {
		t.Errorf("Parse(Dark) = %q, %v", th, ok)
	}
	if _, ok := Parse("solarized"); ok {
		t.Error("Parse accepted unknown theme")
	}
	if Dark.Toggle() != Light || Light.Toggle() != Dark {
		t.Error("Toggle broken")
	}
}
