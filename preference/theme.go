package preference

import (
	"errors"
	"fmt"
	"strings"
)

// Theme is the UI rendering mode. The zero value is not a valid theme.
type Theme string

const (
	// ThemeLight renders light surfaces.
	ThemeLight Theme = "light"
	// ThemeDark renders dark surfaces.
	ThemeDark Theme = "dark"
)

// ErrInvalidTheme is returned for values outside {light, dark}.
var ErrInvalidTheme = errors.New("invalid theme")

// ParseTheme converts a stored or user-supplied value into a [Theme]. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseTheme(value string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, value)
	}
}

// Valid reports whether t is one of the two defined themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Opposite returns the other theme. Invalid values map to dark, the opposite of the
// default.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string {
	return string(t)
}
