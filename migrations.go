// Package backend хранит встроенные SQL-миграции.
package backend

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
