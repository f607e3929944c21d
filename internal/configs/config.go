package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	kerrors "github.com/PolarWolf314/projscan/internal/errors"
	"github.com/PolarWolf314/projscan/internal/output"
	"github.com/PolarWolf314/projscan/internal/project"
	"github.com/PolarWolf314/projscan/internal/scan"
)

type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Output OutputConfig `toml:"output"`
}

type ScanConfig struct {
	Mode           string   `toml:"mode"`
	Strict         bool     `toml:"strict"`
	Hidden         bool     `toml:"hidden"`
	GlobalExcludes bool     `toml:"global_excludes"`
	IgnoreFiles    []string `toml:"ignore_files"`
	Exclude        []string `toml:"exclude"`
	Include        []string `toml:"include"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

// Default returns the settings that reproduce a plain `projscan` run.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Mode:           string(scan.ModeIgnore),
			GlobalExcludes: true,
			IgnoreFiles:    append([]string(nil), scan.DefaultIgnoreFiles...),
		},
		Output: OutputConfig{
			Format: string(output.FormatTriples),
		},
	}
}

// Load returns the default settings overlaid with the user file and then
// the project file for root. Files that do not exist are skipped.
func Load(root string) (*Config, []string, error) {
	config := Default()

	var loaded []string
	for _, path := range []string{UserConfigPath(), ProjectConfigPath(root)} {
		if path == "" {
			continue
		}
		ok, err := config.Merge(path)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			loaded = append(loaded, path)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	return config, loaded, nil
}

// Merge overlays the settings in the TOML file at path. It reports whether
// the file existed.
func (c *Config) Merge(path string) (bool, error) {
	md, err := LoadTOML(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return false, fmt.Errorf("%w: %s: unknown keys: %s", kerrors.ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return true, nil
}

// Validate checks the mode and format names and the include patterns.
func (c *Config) Validate() error {
	if _, err := scan.ParseMode(c.Scan.Mode); err != nil {
		return fmt.Errorf("%w: scan.mode: %w", kerrors.ErrInvalidConfig, err)
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %w", kerrors.ErrInvalidConfig, err)
	}
	if _, err := project.NewFilter(c.Scan.Include); err != nil {
		return fmt.Errorf("%w: scan.include: %w", kerrors.ErrInvalidConfig, err)
	}
	return nil
}
