// Package migrations embeds the schema migrations, one directory per SQL
// dialect.
package migrations

import "embed"

// FS contains the mysql/ and sqlite/ migration sets.
//
//go:embed mysql/*.sql sqlite/*.sql
var FS embed.FS
