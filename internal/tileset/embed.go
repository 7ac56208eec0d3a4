// Package tileset provides embedded tileset definitions and utilities for
// loading them into solver-ready form.
package tileset

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
