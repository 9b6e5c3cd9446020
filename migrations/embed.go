// Package migrations embeds the SQL schema migrations so the compiled
// binary can migrate a database without the source tree on disk.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
