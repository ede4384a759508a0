package postgres

import _ "embed"

// Schema is the idempotent DDL plus reference-data seed applied by the
// test harness and available for bootstrap tooling.
//
//go:embed schema.sql
var Schema string
