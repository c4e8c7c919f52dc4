// Package prefix validates instance prefixes and derives home URLs from them.
//
// A prefix is both the unique key of an instance and the file name of its
// cache record, so anything that could escape the cache directory is rejected.
package prefix

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultDomain is appended to the prefix to build the home URL.
const DefaultDomain = "service-now.com"

// ErrInvalid is returned for empty prefixes and prefixes that are unsafe as file names.
var ErrInvalid = errors.New("invalid prefix")

// A prefix becomes the leftmost labels of the home host name, so it follows
// host name rules: letters, digits, '-' and '.', starting and ending with a
// letter or digit.
var validPattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9.-]{0,61}[A-Za-z0-9])?$`)

// Validate trims p and checks that it is usable as an instance key.
// Returns the trimmed prefix.
func Validate(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("%w: prefix is empty", ErrInvalid)
	}
	if strings.Contains(p, "..") || !validPattern.MatchString(p) {
		return "", fmt.Errorf("%w: %q (use letters, digits, '-' or '.', starting and ending with a letter or digit)", ErrInvalid, p)
	}
	return p, nil
}

// HomeURL returns https://{prefix}.{domain}.
// An empty domain falls back to DefaultDomain.
func HomeURL(p, domain string) string {
	if domain == "" {
		domain = DefaultDomain
	}
	return fmt.Sprintf("https://%s.%s", strings.TrimSpace(p), strings.TrimPrefix(domain, "."))
}
