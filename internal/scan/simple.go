package scan

import (
	"iter"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// SimpleWalker yields every file outside dot-directories. Ignore files are
// not consulted.
type SimpleWalker struct {
	fsys billy.Filesystem
}

// NewSimpleWalker returns a walker that only prunes dot-directories.
func NewSimpleWalker(fsys billy.Filesystem) *SimpleWalker {
	return &SimpleWalker{fsys: fsys}
}

func (w *SimpleWalker) Files() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		w.walk(nil, yield)
	}
}

func (w *SimpleWalker) walk(dir []string, yield func(string, error) bool) bool {
	infos, err := readDir(w.fsys, dir)
	if err != nil {
		return yield("", &WalkError{Path: strings.Join(dir, "/"), Err: err})
	}

	for _, info := range infos {
		path := child(dir, info.Name())
		if info.IsDir() {
			if isHidden(info.Name()) {
				continue
			}
			if !w.walk(path, yield) {
				return false
			}
			continue
		}
		if !yield(strings.Join(path, "/"), nil) {
			return false
		}
	}
	return true
}
