package scan

import (
	"iter"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// IgnoreWalker yields every file not excluded by gitignore-style rules.
type IgnoreWalker struct {
	fsys        billy.Filesystem
	hidden      bool
	ignoreFiles []string
	patterns    []gitignore.Pattern
}

// NewIgnoreWalker returns a rule-aware walker over fsys.
func NewIgnoreWalker(fsys billy.Filesystem, opts Options) *IgnoreWalker {
	ignoreFiles := opts.IgnoreFiles
	if ignoreFiles == nil {
		ignoreFiles = DefaultIgnoreFiles
	}
	return &IgnoreWalker{
		fsys:        fsys,
		hidden:      opts.Hidden,
		ignoreFiles: ignoreFiles,
		patterns:    opts.Patterns,
	}
}

func (w *IgnoreWalker) Files() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		patterns := append([]gitignore.Pattern(nil), w.patterns...)

		// A .git file (worktree, submodule) has no info/exclude beside it.
		if info, err := w.fsys.Stat(gitDir); err == nil && info.IsDir() {
			exclude, err := w.readRules(infoExcludeFile, nil)
			if err != nil && !yield("", err) {
				return
			}
			patterns = append(patterns, exclude...)
		}

		w.walk(nil, patterns, make([][]gitignore.Pattern, len(w.ignoreFiles)), yield)
	}
}

// walk visits dir. base holds the root-level rules. layers holds, for each
// rule file name, the rules inherited from dir's ancestors. Every layer
// outranks base and the layers before it, whatever the directory depth, so
// a root .ignore still overrides a nested .gitignore. It returns false once
// the consumer has stopped.
func (w *IgnoreWalker) walk(dir []string, base []gitignore.Pattern, inherited [][]gitignore.Pattern, yield func(string, error) bool) bool {
	layers := make([][]gitignore.Pattern, len(inherited))
	copy(layers, inherited)
	for i, name := range w.ignoreFiles {
		ps, err := w.readRules(w.fsys.Join(child(dir, name)...), dir)
		if err != nil && !yield("", err) {
			return false
		}
		if len(ps) > 0 {
			// Copy so sibling directories never share appended rules.
			layers[i] = append(layers[i][:len(layers[i]):len(layers[i])], ps...)
		}
	}
	matcher := gitignore.NewMatcher(flatten(base, layers))

	infos, err := readDir(w.fsys, dir)
	if err != nil {
		return yield("", &WalkError{Path: strings.Join(dir, "/"), Err: err})
	}

	for _, info := range infos {
		name := info.Name()
		path := child(dir, name)

		if info.IsDir() {
			if name == gitDir || (!w.hidden && isHidden(name)) || matcher.Match(path, true) {
				continue
			}
			if !w.walk(path, base, layers, yield) {
				return false
			}
			continue
		}

		if (!w.hidden && isHidden(name)) || matcher.Match(path, false) {
			continue
		}
		if !yield(strings.Join(path, "/"), nil) {
			return false
		}
	}
	return true
}

func flatten(base []gitignore.Pattern, layers [][]gitignore.Pattern) []gitignore.Pattern {
	patterns := append([]gitignore.Pattern(nil), base...)
	for _, layer := range layers {
		patterns = append(patterns, layer...)
	}
	return patterns
}

// readRules parses the rule file at name, scoping its patterns to domain.
// A missing file yields no patterns and no error.
func (w *IgnoreWalker) readRules(name string, domain []string) ([]gitignore.Pattern, error) {
	data, err := util.ReadFile(w.fsys, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &WalkError{Path: name, Err: err}
	}
	return ParsePatterns(string(data), domain), nil
}
