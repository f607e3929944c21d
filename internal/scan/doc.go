// Package scan enumerates the files below a repository root.
//
// Two walkers implement the Walker interface:
//
//   - ModeIgnore honours gitignore-style rules: .gitignore and .ignore files
//     anywhere in the tree, .git/info/exclude, and any extra patterns the
//     caller supplies. Matching is delegated to go-git's gitignore package.
//     A .ignore rule outranks a .gitignore rule wherever either file sits.
//   - ModeSimple descends into every directory except those whose name
//     starts with a dot, without reading ignore files.
//
// Both walk a billy.Filesystem rooted at the repository root, so tests can
// substitute an in-memory filesystem. Paths are yielded slash-separated and
// relative to that root, in name order within each directory.
//
// LoadGlobalPatterns finds the user's global excludes file the way git does,
// through core.excludesfile or the default git/ignore under the XDG config
// directory.
//
// Errors reading a directory or ignore file are yielded as *WalkError values
// and the walk carries on with the next entry. Whether such an error ends
// the scan is the caller's decision.
package scan
