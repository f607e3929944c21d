// Package project decodes project.json descriptors.
//
// A descriptor names a project and maps target names to targets, each of
// which maps configuration names to opaque values:
//
//	{
//	  "name": "web",
//	  "targets": {
//	    "build": {"configurations": {"development": {}, "production": {}}}
//	  }
//	}
//
// Key order is taken from the document rather than sorted, so the triples
// derived from a descriptor come out in the order the author wrote them.
// Configuration values are never interpreted; only their keys are kept.
//
// A Filter narrows which project files are read, using doublestar globs
// over their repository-relative paths.
package project
