// Package migrations embeds the ledger schema. The server applies it at
// startup in Postgres mode and integration tests apply it to fresh containers.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
