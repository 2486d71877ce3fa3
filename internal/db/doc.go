// Package db opens the PostgreSQL connection pool the loader writes through.
//
// Connection strings are accepted as PostgreSQL URIs or as ADO.NET style
// Key=Value; lists, so settings written for the original SQL Server tooling
// keep working. Besides password authentication, short-lived credentials
// from AWS RDS IAM, Azure Entra ID and Google Cloud SQL IAM are supported.
package db
