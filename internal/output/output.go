// Package output renders scan results on standard output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	kerrors "github.com/PolarWolf314/projscan/internal/errors"
	"github.com/PolarWolf314/projscan/internal/project"
	"github.com/PolarWolf314/projscan/internal/utils"
)

// Format selects how results are printed.
type Format string

const (
	// FormatTriples prints project:target:configuration lines.
	FormatTriples Format = "triples"
	// FormatPaths prints each project file's path relative to the root.
	FormatPaths Format = "paths"
	// FormatJSON prints one JSON object per triple.
	FormatJSON Format = "json"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatTriples, FormatPaths, FormatJSON}

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats, format) {
		return format, nil
	}
	return "", fmt.Errorf("%w %q (expected one of: triples, paths, json)", kerrors.ErrUnknownFormat, s)
}

// Emitter writes the output rows for one project file.
type Emitter interface {
	// Emit returns the number of rows written.
	Emit(f project.File) (int, error)

	// NeedsDescriptor reports whether files must be parsed before Emit.
	// When false, files are emitted without being read.
	NeedsDescriptor() bool
}

// New returns the emitter for format writing to w. root is the directory
// that paths are made relative to.
func New(format Format, w io.Writer, root string) (Emitter, error) {
	switch format {
	case FormatTriples:
		return &TripleEmitter{w: w}, nil
	case FormatPaths:
		return &PathEmitter{w: w, root: root}, nil
	case FormatJSON:
		return &JSONEmitter{enc: json.NewEncoder(w)}, nil
	}
	return nil, fmt.Errorf("%w %q", kerrors.ErrUnknownFormat, format)
}

// TripleEmitter prints one project:target:configuration line per triple.
type TripleEmitter struct {
	w io.Writer
}

func (e *TripleEmitter) NeedsDescriptor() bool { return true }

func (e *TripleEmitter) Emit(f project.File) (int, error) {
	if f.Descriptor == nil {
		return 0, nil
	}
	triples := f.Descriptor.Triples()
	for _, triple := range triples {
		if _, err := fmt.Fprintln(e.w, triple.String()); err != nil {
			return 0, err
		}
	}
	return len(triples), nil
}

// PathEmitter prints the path of every project file without reading it.
type PathEmitter struct {
	w    io.Writer
	root string
}

func (e *PathEmitter) NeedsDescriptor() bool { return false }

func (e *PathEmitter) Emit(f project.File) (int, error) {
	if _, err := fmt.Fprintln(e.w, utils.RelativeOrAbsolute(e.root, f.Path)); err != nil {
		return 0, err
	}
	return 1, nil
}

type jsonTriple struct {
	Project       string `json:"project"`
	Target        string `json:"target"`
	Configuration string `json:"configuration"`
	Path          string `json:"path"`
}

// JSONEmitter prints one compact JSON object per triple.
type JSONEmitter struct {
	enc *json.Encoder
}

func (e *JSONEmitter) NeedsDescriptor() bool { return true }

func (e *JSONEmitter) Emit(f project.File) (int, error) {
	if f.Descriptor == nil {
		return 0, nil
	}
	triples := f.Descriptor.Triples()
	for _, triple := range triples {
		row := jsonTriple{
			Project:       triple.Project,
			Target:        triple.Target,
			Configuration: triple.Configuration,
			Path:          f.RelPath,
		}
		if err := e.enc.Encode(row); err != nil {
			return 0, err
		}
	}
	return len(triples), nil
}
