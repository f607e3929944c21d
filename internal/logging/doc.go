// Package logger provides levelled diagnostic output for projscan.
//
// Every message goes to the diagnostic stream (stderr by default) so that
// piped standard output only ever carries scan results.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info messages
//   - --debug: Shows debug details
//
// Warnings and errors are always shown.
//
// # Log Methods
//
//	Logger.Infof()   // Shown with --verbose
//	Logger.Debugf()  // Shown only with --debug
//	Logger.Warnf()   // Always shown
//	Logger.Errorf()  // Always shown
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Warnf("Failed to read %s: %v", path, err)
//
// The root command creates a logger in its PersistentPreRun and passes it
// to the scan workflow.
package logger
