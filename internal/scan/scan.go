package scan

import (
	"fmt"
	"iter"
	"os"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	kerrors "github.com/PolarWolf314/projscan/internal/errors"
)

// Mode selects a traversal strategy.
type Mode string

const (
	// ModeIgnore skips paths matched by gitignore-style rules.
	ModeIgnore Mode = "ignore"
	// ModeSimple skips dot-directories only.
	ModeSimple Mode = "simple"
)

// Modes lists the supported traversal modes.
var Modes = []Mode{ModeIgnore, ModeSimple}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Modes, mode) {
		return mode, nil
	}
	return "", fmt.Errorf("%w %q (expected one of: ignore, simple)", kerrors.ErrUnknownMode, s)
}

// DefaultIgnoreFiles are the per-directory rule files read in ModeIgnore.
// Rules from later names take precedence over earlier ones at any depth,
// and within one name a deeper file wins over a shallower one.
var DefaultIgnoreFiles = []string{".gitignore", ".ignore"}

const (
	gitDir          = ".git"
	infoExcludeFile = gitDir + "/info/exclude"
	commentPrefix   = "#"
)

// Options tune a walker. The zero value is usable.
type Options struct {
	// Hidden includes entries whose name starts with a dot in ModeIgnore.
	Hidden bool

	// IgnoreFiles overrides DefaultIgnoreFiles when non-nil.
	IgnoreFiles []string

	// Patterns are matched at the root with the lowest precedence, before
	// .git/info/exclude and the per-directory files.
	Patterns []gitignore.Pattern
}

// Walker enumerates the non-directory entries below a filesystem root.
type Walker interface {
	// Files starts a fresh traversal. The sequence yields either a path or
	// a *WalkError for each step.
	Files() iter.Seq2[string, error]
}

// WalkError reports a failure to read part of the tree.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	path := e.Path
	if path == "" {
		path = "."
	}
	return fmt.Sprintf("%s: %v", path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// New returns the walker for mode over fsys.
func New(mode Mode, fsys billy.Filesystem, opts Options) (Walker, error) {
	switch mode {
	case ModeIgnore:
		return NewIgnoreWalker(fsys, opts), nil
	case ModeSimple:
		return NewSimpleWalker(fsys), nil
	}
	return nil, fmt.Errorf("%w %q", kerrors.ErrUnknownMode, mode)
}

// ParsePatterns turns gitignore-formatted text into patterns scoped to domain.
// Blank lines and comments are skipped.
func ParsePatterns(text string, domain []string) []gitignore.Pattern {
	var ps []gitignore.Pattern
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, commentPrefix) || strings.TrimSpace(line) == "" {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, domain))
	}
	return ps
}

// readDir lists a directory sorted by name.
func readDir(fsys billy.Filesystem, dir []string) ([]os.FileInfo, error) {
	infos, err := fsys.ReadDir(fsys.Join(dir...))
	if err != nil {
		return nil, err
	}
	slices.SortFunc(infos, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return infos, nil
}

func child(dir []string, name string) []string {
	path := make([]string, len(dir), len(dir)+1)
	copy(path, dir)
	return append(path, name)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
