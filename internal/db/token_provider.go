package db

import (
	"context"
	"time"
)

// TokenProvider supplies short-lived tokens used as the database password.
type TokenProvider interface {
	// GetToken returns a token and the time it stops being valid.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider for log lines. It must not reveal secrets.
	String() string
}

// AzurePostgreSQLScope is the Entra ID scope for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// tokenExpiryWarning is the remaining lifetime below which a warning is logged.
const tokenExpiryWarning = 5 * time.Minute
