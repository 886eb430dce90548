package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the schema for the postgres backends.
var Migrations = migrate.NewMigrations()
