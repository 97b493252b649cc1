package postgres

import (
	_ "embed"
)

// Schema is the DDL for every table the service owns. Statements are
// idempotent so it can be applied on each start.
//
//go:embed schema.sql
var Schema string
