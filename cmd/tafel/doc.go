// Package main hosts the tafel CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the ingest run itself plus the
// surrounding chores: inspecting the ingest record, regenerating the index,
// checking external tools, and configuration scaffolding. Configuration
// resolution happens once per invocation and is shared across commands.
//
// Keep this package lean: new behavior belongs in the internal packages
// first, surfaced here through dedicated commands or flags.
package main
