// Package colortag validates and normalizes the display color attached to an instance.
//
// Colors are stored as lowercase "#rrggbb". Short "#rgb" forms and values
// without a leading "#" are accepted on input and expanded.
package colortag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Default is the color assigned to instances that were never configured.
const Default = "#ffffff"

// ErrInvalidColor is returned for values that are not hex colors.
var ErrInvalidColor = errors.New("invalid color")

// Normalize parses s and returns it in canonical "#rrggbb" form.
func Normalize(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidColor)
	}
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	if len(v) != 4 && len(v) != 7 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	c, err := colorful.Hex(v)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

// OrDefault normalizes s, falling back to fallback when s is empty.
// An invalid non-empty s is still reported as an error.
func OrDefault(s, fallback string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	return Normalize(s)
}

// IsDark reports whether text drawn on top of c should be light.
func IsDark(hex string) bool {
	c, err := colorful.Hex(hex)
	if err != nil {
		return false
	}
	l, _, _ := c.Lab()
	return l < 0.5
}
