package project

import (
	"fmt"
	"path"
	"path/filepath"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/tidwall/gjson"

	kerrors "github.com/PolarWolf314/projscan/internal/errors"
)

// FileName is the base name of project descriptor files.
const FileName = "project.json"

// Descriptor is the decoded form of a project.json file.
type Descriptor struct {
	Name    string
	Targets []Target
}

// Target holds the configuration names of one target, in document order.
type Target struct {
	Name           string
	Configurations []string
}

// Triple is one (project, target, configuration) combination.
type Triple struct {
	Project       string
	Target        string
	Configuration string
}

func (t Triple) String() string {
	return t.Project + ":" + t.Target + ":" + t.Configuration
}

// File is a project descriptor together with where it was found.
type File struct {
	// Path is the absolute path of the file.
	Path string

	// RelPath is the slash-separated path relative to the scan root.
	RelPath string

	// Descriptor is nil when the file could not be read or decoded.
	Descriptor *Descriptor
}

// IsProjectFile reports whether the base name of p is exactly FileName.
func IsProjectFile(p string) bool {
	return path.Base(filepath.ToSlash(p)) == FileName
}

// Triples lists every configuration of every target. Targets without
// configurations contribute nothing.
func (d *Descriptor) Triples() []Triple {
	var triples []Triple
	for _, target := range d.Targets {
		for _, configuration := range target.Configurations {
			triples = append(triples, Triple{
				Project:       d.Name,
				Target:        target.Name,
				Configuration: configuration,
			})
		}
	}
	return triples
}

// Load reads and decodes the descriptor at name within fsys. The file must
// be valid UTF-8.
func Load(fsys billy.Basic, name string) (*Descriptor, error) {
	data, err := util.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to read %s: %w: not valid UTF-8", name, kerrors.ErrInvalidProject)
	}

	descriptor, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON in %s: %w", name, err)
	}
	return descriptor, nil
}

// Parse decodes a project.json document. Unknown fields are ignored and
// missing targets or configurations decode as empty.
func Parse(data []byte) (*Descriptor, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", kerrors.ErrInvalidProject)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an object, found %s", kerrors.ErrInvalidProject, describe(root))
	}

	var (
		descriptor Descriptor
		seenName   bool
		seenTarget bool
		err        error
	)

	root.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "name":
			if seenName {
				err = fmt.Errorf("%w: duplicate field `name`", kerrors.ErrInvalidProject)
				return false
			}
			seenName = true
			if value.Type != gjson.String {
				err = fmt.Errorf("%w: `name` must be a string, found %s", kerrors.ErrInvalidProject, describe(value))
				return false
			}
			descriptor.Name = value.Str
		case "targets":
			if seenTarget {
				err = fmt.Errorf("%w: duplicate field `targets`", kerrors.ErrInvalidProject)
				return false
			}
			seenTarget = true
			descriptor.Targets, err = parseTargets(value)
			return err == nil
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	if !seenName {
		return nil, fmt.Errorf("%w: missing field `name`", kerrors.ErrInvalidProject)
	}
	return &descriptor, nil
}

func parseTargets(value gjson.Result) ([]Target, error) {
	if !value.IsObject() {
		return nil, fmt.Errorf("%w: `targets` must be an object, found %s", kerrors.ErrInvalidProject, describe(value))
	}

	var (
		targets []Target
		index   = make(map[string]int)
		err     error
	)

	value.ForEach(func(key, body gjson.Result) bool {
		name := key.String()
		if !body.IsObject() {
			err = fmt.Errorf("%w: target %q must be an object, found %s", kerrors.ErrInvalidProject, name, describe(body))
			return false
		}

		var configurations []string
		configurations, err = parseConfigurations(name, body)
		if err != nil {
			return false
		}

		// A repeated key keeps its first position and takes the last value.
		if i, ok := index[name]; ok {
			targets[i].Configurations = configurations
			return true
		}
		index[name] = len(targets)
		targets = append(targets, Target{Name: name, Configurations: configurations})
		return true
	})
	if err != nil {
		return nil, err
	}
	return targets, nil
}

func parseConfigurations(target string, body gjson.Result) ([]string, error) {
	var (
		found  bool
		result gjson.Result
		err    error
	)
	body.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "configurations" {
			if found {
				err = fmt.Errorf("%w: duplicate field `configurations` in target %q", kerrors.ErrInvalidProject, target)
				return false
			}
			found = true
			result = value
		}
		return true
	})
	if err != nil || !found {
		return nil, err
	}
	if !result.IsObject() {
		return nil, fmt.Errorf("%w: `configurations` of target %q must be an object, found %s",
			kerrors.ErrInvalidProject, target, describe(result))
	}

	var (
		names []string
		seen  = make(map[string]bool)
	)
	result.ForEach(func(key, _ gjson.Result) bool {
		name := key.String()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return true
	})
	return names, nil
}

// describe names the JSON type of a value for error messages.
func describe(value gjson.Result) string {
	switch value.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "a boolean"
	case gjson.Number:
		return "a number"
	case gjson.String:
		return "a string"
	}
	if value.IsArray() {
		return "an array"
	}
	return "an object"
}
