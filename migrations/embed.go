package migrations

import "embed"

// Files holds the period calendar schema, applied in <version>_<label>.sql order.
//
//go:embed *.sql
var Files embed.FS
