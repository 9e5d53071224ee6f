// Package db embeds the goose migrations so binaries do not depend on the
// working directory they are started from.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads from.
const MigrationsDir = "migrations"
