// Package resource provides the one CRUD handler every entity table is
// served through.
//
// A Definition names the table, the columns bound on insert and update, and
// the user-facing messages. Handler turns it into list, get-by-id, create,
// update and delete operations, both as plain methods and as gin handlers.
// Report covers the read-only by-user queries that need a post-fetch
// transform.
package resource
