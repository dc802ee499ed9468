// Package idr is the Composition Root for the interactive decompiler workbench core.
//
// It connects the session model (Domain Layer) with the payload and filesystem
// adapters using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// An external decompiler turns a Delphi executable into artifact collections
// (units, RTTI types, forms, strings, names, listings, memory map) plus a class
// hierarchy. idr holds those collections for one session, lets a user layer edits
// on top of them through a linear undo/redo journal, and answers "what is the
// current value of X" without ever mutating the decompiler's output.
//
// Features:
//
//   - **Atomic Loads**: a payload is validated before it replaces the session; a bad
//     payload leaves the previous session untouched.
//   - **Cursor-Aware Journal**: undone edits never leak into effective values.
//   - **Tree Filtering**: ancestor-preserving, non-mutating search over class and form trees.
//   - **Typed Views**: generic filterable views (`idr.Units`, `idr.MapEntries`, ...).
//   - **Reactive**: `Session.Watch` streams edits, loads and progress, filtered by glob.
//   - **Live Reload**: the fs adapter reloads the session when the payload file changes.
//
// Usage:
//
//	session, loader, err := idr.Open("./session.json",
//		idr.WithStrict(true),
//		idr.WithLogger(logger),
//	)
//
//	// Edit a string and read it back
//	_, _, err = session.EditString("str-1", "Hello, world")
//	value, _ := session.StringValue("str-1")
package idr
