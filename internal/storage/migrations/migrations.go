// Package migrations embeds the goose migrations of the local storage file.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
