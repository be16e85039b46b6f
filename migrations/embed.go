package migrations

import "embed"

// Files holds the tracker's SQL schema history, applied in lexical order
// at startup. Migrations are forward only: a shipped file is never
// edited, mistakes are corrected by adding a new one.
//
//go:embed *.sql
var Files embed.FS
