package scan

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/format/config"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const (
	coreSection      = "core"
	excludesFileKey  = "excludesfile"
	userGitConfig    = ".gitconfig"
	defaultConfigDir = ".config"
)

// LoadGlobalPatterns returns the user's global exclude rules the way git
// finds them: core.excludesfile from ~/.gitconfig, else from
// $XDG_CONFIG_HOME/git/config, else the default $XDG_CONFIG_HOME/git/ignore.
// $XDG_CONFIG_HOME falls back to ~/.config. Missing files yield no patterns.
//
// fsys must be rooted at the filesystem root.
func LoadGlobalPatterns(fsys billy.Filesystem) ([]gitignore.Pattern, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = fsys.Join(home, defaultConfigDir)
	}

	var excludesFile string
	for _, name := range []string{fsys.Join(home, userGitConfig), fsys.Join(configHome, "git", "config")} {
		excludesFile, err = readExcludesFile(fsys, name)
		if err != nil {
			return nil, err
		}
		if excludesFile != "" {
			break
		}
	}

	switch {
	case excludesFile == "":
		excludesFile = fsys.Join(configHome, "git", "ignore")
	case strings.HasPrefix(excludesFile, "~/"):
		excludesFile = fsys.Join(home, excludesFile[2:])
	}

	data, err := util.ReadFile(fsys, excludesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", excludesFile, err)
	}
	return ParsePatterns(string(data), nil), nil
}

// readExcludesFile returns core.excludesfile from the git config at name,
// or "" when the file or the key is absent.
func readExcludesFile(fsys billy.Filesystem, name string) (string, error) {
	data, err := util.ReadFile(fsys, name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	raw := config.New()
	if err := config.NewDecoder(bytes.NewReader(data)).Decode(raw); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return raw.Section(coreSection).Options.Get(excludesFileKey), nil
}
