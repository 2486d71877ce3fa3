// Package source locates and opens the workbook to import.
//
// A workbook is named either by a local path or by an s3://bucket/key URL.
// Names typed at a prompt often arrive quoted (drag and drop on Windows
// terminals), so surrounding whitespace and double quotes are removed first.
package source
