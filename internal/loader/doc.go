// Package loader writes parsed worksheet records into PostgreSQL.
//
// Records are grouped by destination table, each table is created with one
// text column per distinct field key, and every record is inserted on its
// own naming only the columns it populates. A failed insert is counted and
// reported; it never stops the batch.
package loader
