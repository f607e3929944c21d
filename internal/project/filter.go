package project

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/projscan/internal/errors"
)

// Filter selects project files by their slash-separated path relative to the
// scan root. Patterns use doublestar syntax, so "apps/**" selects every
// project below apps. A Filter without patterns selects everything.
type Filter struct {
	patterns []string
}

// NewFilter validates patterns and returns a Filter over them.
func NewFilter(patterns []string) (*Filter, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w %q", kerrors.ErrInvalidPattern, pattern)
		}
	}
	return &Filter{patterns: patterns}, nil
}

// Match reports whether rel is selected.
func (f *Filter) Match(rel string) bool {
	if f == nil || len(f.patterns) == 0 {
		return true
	}
	for _, pattern := range f.patterns {
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}
	}
	return false
}
