// Package theme holds the persisted light/dark display preference.
package theme

import "strings"

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Parse accepts only "dark" and "light".
func Parse(s string) (Theme, bool) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Dark, Light:
		return t, true
	default:
		return "", false
	}
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) IsDark() bool {
	return t == Dark
}

// Resolve picks the saved theme when there is one and otherwise follows the
// operating system preference.
func Resolve(saved Theme, ok bool, osPrefersDark bool) Theme {
	if ok {
		return saved
	}
	if osPrefersDark {
		return Dark
	}
	return Light
}
