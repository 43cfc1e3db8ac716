// Package migrations contiene las migraciones SQL del store SQLite.
package migrations

import "embed"

// FS migraciones embebidas en el binario.
//
//go:embed *.sql
var FS embed.FS
