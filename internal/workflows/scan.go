package workflows

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	kerrors "github.com/PolarWolf314/projscan/internal/errors"
	logger "github.com/PolarWolf314/projscan/internal/logging"
	"github.com/PolarWolf314/projscan/internal/output"
	"github.com/PolarWolf314/projscan/internal/project"
	"github.com/PolarWolf314/projscan/internal/scan"
	"github.com/PolarWolf314/projscan/internal/utils"
)

// ScanOptions configures the scan workflow.
type ScanOptions struct {
	// Root is the repository root. Paths in the output are relative to it.
	Root string

	// Mode selects the traversal strategy.
	Mode scan.Mode

	// Format selects how results are printed.
	Format output.Format

	// Strict makes the first traversal error end the scan.
	Strict bool

	// Hidden includes dot entries in ignore mode.
	Hidden bool

	// GlobalExcludes loads the user's global git excludes in ignore mode:
	// core.excludesfile, or $XDG_CONFIG_HOME/git/ignore when it is unset.
	GlobalExcludes bool

	// IgnoreFiles overrides the per-directory rule file names when non-nil.
	IgnoreFiles []string

	// Exclude holds extra gitignore-style patterns scoped to the root.
	Exclude []string

	// Include restricts output to project files matching one of these
	// doublestar globs. Empty means every project file.
	Include []string

	// Stdout receives the results. Nil means os.Stdout.
	Stdout io.Writer

	// Logger receives warnings and debug output.
	Logger logger.Logger

	// FS overrides the filesystem rooted at Root.
	FS billy.Filesystem

	// GlobalFS overrides the filesystem used to read the user's git
	// configuration. It must be rooted at the filesystem root.
	GlobalFS billy.Filesystem
}

// ScanResult contains the outcome of a scan.
type ScanResult struct {
	// Root is the directory that was scanned.
	Root string

	// FilesWalked counts every file the walker yielded.
	FilesWalked int

	// ProjectFiles counts the files named project.json.
	ProjectFiles int

	// Excluded counts project files left out by the include patterns.
	Excluded int

	// Parsed counts project files that decoded successfully.
	Parsed int

	// Skipped counts project files that could not be read or decoded.
	Skipped int

	// Rows counts the lines written to Stdout.
	Rows int

	// WalkErrors counts traversal errors that were reported as warnings.
	WalkErrors int
}

// LocateRoot returns the repository root at or above start.
//
// Returns ErrRootNotFound if no ancestor contains a .git entry.
func LocateRoot(start string) (string, error) {
	return utils.FindRepositoryRoot(start)
}

// Scan walks the repository below opts.Root and prints results for every
// project file, in traversal order, as soon as each file is processed.
//
// A project file that cannot be read or decoded is logged as a warning and
// skipped. A traversal error is logged as a warning unless opts.Strict is
// set, in which case Scan stops and returns an error wrapping ErrTraversal.
// The returned result is never nil, even when an error is returned.
func Scan(ctx context.Context, opts ScanOptions) (*ScanResult, error) {
	log := opts.Logger
	result := &ScanResult{Root: opts.Root}

	fsys := opts.FS
	if fsys == nil {
		fsys = osfs.New(opts.Root)
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	emitter, err := output.New(opts.Format, stdout, opts.Root)
	if err != nil {
		return result, err
	}

	filter, err := project.NewFilter(opts.Include)
	if err != nil {
		return result, err
	}

	walker, err := scan.New(opts.Mode, fsys, scan.Options{
		Hidden:      opts.Hidden,
		IgnoreFiles: opts.IgnoreFiles,
		Patterns:    rootPatterns(opts, log),
	})
	if err != nil {
		return result, err
	}
	log.Debugf("Scanning %s in %s mode", opts.Root, opts.Mode)

	for rel, err := range walker.Files() {
		if err != nil {
			if opts.Strict {
				return result, fmt.Errorf("%w: %w", kerrors.ErrTraversal, err)
			}
			result.WalkErrors++
			log.Warnf("Error walking directory: %v", err)
			continue
		}

		result.FilesWalked++
		if !project.IsProjectFile(rel) {
			continue
		}
		result.ProjectFiles++
		if !filter.Match(rel) {
			result.Excluded++
			log.Debugf("Skipping %s: not matched by include patterns", rel)
			continue
		}

		file := project.File{
			Path:    filepath.Join(opts.Root, filepath.FromSlash(rel)),
			RelPath: rel,
		}

		if emitter.NeedsDescriptor() {
			descriptor, err := project.Load(fsys, rel)
			if err != nil {
				result.Skipped++
				log.Warnf("%v", err)
				continue
			}
			file.Descriptor = descriptor
			result.Parsed++
			log.Debugf("Parsed %s (project %s, %d targets)", rel, descriptor.Name, len(descriptor.Targets))
		}

		rows, err := emitter.Emit(file)
		if err != nil {
			return result, fmt.Errorf("failed to write output: %w", err)
		}
		result.Rows += rows
	}

	return result, nil
}

// rootPatterns collects the root-scoped rules that apply before any
// .git/info/exclude or per-directory file.
func rootPatterns(opts ScanOptions, log logger.Logger) []gitignore.Pattern {
	if opts.Mode != scan.ModeIgnore {
		return nil
	}

	var patterns []gitignore.Pattern
	if opts.GlobalExcludes {
		globalFS := opts.GlobalFS
		if globalFS == nil {
			globalFS = osfs.New(string(filepath.Separator))
		}
		global, err := scan.LoadGlobalPatterns(globalFS)
		if err != nil {
			log.Warnf("Failed to load global excludes: %v", err)
		} else {
			log.Debugf("Loaded %d global exclude patterns", len(global))
			patterns = append(patterns, global...)
		}
	}

	for _, line := range opts.Exclude {
		patterns = append(patterns, scan.ParsePatterns(line, nil)...)
	}
	return patterns
}
