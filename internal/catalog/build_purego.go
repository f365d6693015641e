//go:build purego || !cgo
// +build purego !cgo

package catalog

// This file is compiled when building without CGO or with the purego tag.
// It uses a pure Go SQLite implementation for the local catalog.
//
// Build command:
//   CGO_ENABLED=0 go build -tags "purego" ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the SQLite driver backing the local catalog
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)
