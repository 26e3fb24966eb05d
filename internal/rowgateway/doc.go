// Package rowgateway executes parameterized SQL statements against the
// relational store and hands the results back as column-keyed rows.
//
// Statements are written with '?' placeholders whatever the driver; the
// gateway rebinds them for PostgreSQL. Parameters are always bound by
// position and never interpolated into the statement text. Every driver
// error is reported as a *StorageFailure and is never retried.
package rowgateway
