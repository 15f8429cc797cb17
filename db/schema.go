package db

import _ "embed"

// InitSQL creates the ledger tables, it is safe to run repeatedly
//
//go:embed init_pg_db.sql
var InitSQL string
