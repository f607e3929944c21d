// Package ui provides semantic text formatting for diagnostic output.
//
// Scan results on stdout are never decorated. The formatters here are used
// for the log prefixes and for human-oriented messages on stderr, such as
// paths in warnings and the verbose scan summary.
//
// # Semantic Formatters
//
//	ui.Path.Sprint("apps/web/project.json")  // File paths
//	ui.Warning.Sprint("Warning: ")           // Warning prefixes
//	ui.Error.Sprint("Error: ")               // Error prefixes
//	ui.Highlight.Sprint("ignore")            // User values
//	ui.Muted.Sprint("3 skipped")             // De-emphasized text
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - TERM is "dumb"
//   - stderr is not a terminal
//
// When colors are disabled, formatters apply text decorations:
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration (self-evident from context)
package ui
