// Package migrations embeds SQL migration files into the binary.
//
// The schema matches the vendor server's tables exactly (camelCase names,
// millisecond timestamps) and every statement uses IF NOT EXISTS, so
// running against a database the vendor already initialised is a no-op.
package migrations

import (
	"embed"

	"github.com/nolongerevil/frontend/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // Files are at root of embedded FS
}
