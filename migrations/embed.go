// Package migrations embeds SQL migration files into the binary.
//
// This allows the API to migrate the hosted database at startup without
// needing the SQL files present on the filesystem - they're compiled
// into the executable and applied by goose.
package migrations

import (
	"embed"

	"github.com/huertohogar/huerto-api/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	// Register embedded migrations with the database package.
	// The embed directive above captures all .sql files in this directory.
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // Files are at root of embedded FS
}
