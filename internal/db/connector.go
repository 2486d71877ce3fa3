package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/sheetload/internal/retry"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

const (
	// MaxConns caps the pool: rows are written one statement at a time.
	MaxConns = 1

	// DefaultMaxConnIdleTime keeps the single connection alive across slow worksheets.
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config, logger sheetload.Logger) {
	poolConfig.MaxConns = MaxConns
	poolConfig.MinConns = 0
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("%s: %s", notice.Severity, notice.Message)
	}
}

func newRetryExecutor(config *sheetload.ConnectionConfig, logger sheetload.Logger) *retry.Executor {
	strategy := retry.NewExponentialBackoff(config.ConnectRetries,
		retry.WithInitialDelay(sheetload.DefaultRetryInitialDelay),
		retry.WithMaxDelay(sheetload.DefaultRetryMaxDelay),
	)
	return retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), strategy, logger)
}

// openPool creates a pool for connStr and pings it once.
// customize, when non-nil, runs after the shared pool settings are applied.
func openPool(ctx context.Context, connStr string, config *sheetload.ConnectionConfig, logger sheetload.Logger, customize func(*pgxpool.Config)) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	configurePool(poolConfig, logger)
	if customize != nil {
		customize(poolConfig)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, config.Host, config.Port, config.Database)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, config.Host, config.Port, config.Database)
	}

	return pool, nil
}

// StandardConnector connects with username and password, retrying
// transient failures ConnectRetries times.
type StandardConnector struct {
	config        *sheetload.ConnectionConfig
	logger        sheetload.Logger
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a StandardConnector for config.
func NewStandardConnector(config *sheetload.ConnectionConfig, logger sheetload.Logger) *StandardConnector {
	if config == nil {
		panic("config cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &StandardConnector{
		config:        config,
		logger:        logger,
		retryExecutor: newRetryExecutor(config, logger),
	}
}

// Connect opens the pool, retrying on transient errors.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	connStr := BuildConnectionString(c.config)

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		p, err := openPool(ctx, connStr, c.config, c.logger, nil)
		if err != nil {
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// NewConnector creates the Connector matching config.AuthMethod.
func NewConnector(config *sheetload.ConnectionConfig, logger sheetload.Logger) (sheetload.Connector, error) {
	switch config.AuthMethod {
	case sheetload.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil
	case sheetload.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case sheetload.AuthMethodGoogleIAM:
		return newGoogleConnector(config, logger)
	case sheetload.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, sheetload.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError adds hints for the usual causes of a failed connection.
func wrapConnectionError(err error, host string, port int, database string) error {
	msg := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Check that PostgreSQL is running (pg_isready -h %s -p %d) and that
the host and port in SqlSettings.ConnectionString are right.

Original error: %w`, addr, host, port, err)

	case strings.Contains(msg, "no such host"):
		return fmt.Errorf(`cannot resolve host %q

Check the host name in the connection string and your DNS settings.

Original error: %w`, host, err)

	case strings.Contains(msg, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database %q

Check the user name and password in the connection string or $PGPASSWORD.

Original error: %w`, database, err)

	case strings.Contains(msg, "database") && strings.Contains(msg, "does not exist"):
		return fmt.Errorf(`database %q does not exist

Create it first (createdb %s) or point the connection string elsewhere.

Original error: %w`, database, database, err)

	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return fmt.Errorf(`connection timed out to %s

The server is unreachable, overloaded or behind a firewall dropping packets.

Original error: %w`, addr, err)

	case strings.Contains(msg, "ssl") || strings.Contains(msg, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Adjust sslmode in the connection string (for example sslmode=require).

Original error: %w`, err)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}

func newAWSConnector(config *sheetload.ConnectionConfig, logger sheetload.Logger) (sheetload.Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)

	provider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(config, provider, logger), nil
}

func newGoogleConnector(config *sheetload.ConnectionConfig, logger sheetload.Logger) (sheetload.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires SqlSettings.GoogleInstance (project:region:instance): %w", sheetload.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a user name in the connection string: %w", sheetload.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, logger), nil
}

// newAzureConnector uses service principal credentials when all three are
// present and the DefaultAzureCredential chain otherwise.
func newAzureConnector(config *sheetload.ConnectionConfig, logger sheetload.Logger) (sheetload.Connector, error) {
	var (
		provider *AzureTokenProvider
		err      error
	)

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		provider, err = NewAzureServicePrincipalProvider(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret)
	} else {
		provider, err = NewAzureDefaultCredentialProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure token provider: %w", err)
	}

	return NewTokenBasedConnector(config, provider, logger), nil
}
