// Package configs manages projscan settings.
//
// Settings are stored in TOML format at two levels:
//
//   - User config: $XDG_CONFIG_HOME/projscan/config.toml (or the OS user
//     config directory)
//   - Project config: <repository root>/.projscan.toml
//
// Files are applied in that order, and each file only overrides the keys it
// sets. A missing file is not an error. Command-line flags are applied last
// by the cmd package.
//
// # Schema
//
//	[scan]
//	mode = "ignore"            # or "simple"
//	strict = false             # traversal errors end the scan
//	hidden = false             # ignore mode: include dot entries
//	global_excludes = true     # ignore mode: honour core.excludesfile
//	ignore_files = [".gitignore", ".ignore"]
//	exclude = ["tmp/"]         # extra gitignore-style patterns
//	include = ["apps/**"]      # only project files matching these globs
//
//	[output]
//	format = "triples"         # or "paths", "json"
package configs
