package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/sheetload/internal/retry"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// TokenBasedConnector authenticates with a token from a TokenProvider
// (AWS RDS IAM, Azure Entra ID) in place of a password. A fresh token is
// requested on every attempt.
type TokenBasedConnector struct {
	config        *sheetload.ConnectionConfig
	provider      TokenProvider
	logger        sheetload.Logger
	retryExecutor *retry.Executor
}

// NewTokenBasedConnector creates a connector that takes its password from provider.
func NewTokenBasedConnector(config *sheetload.ConnectionConfig, provider TokenProvider, logger sheetload.Logger) *TokenBasedConnector {
	if config == nil {
		panic("config cannot be nil")
	}
	if provider == nil {
		panic("provider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &TokenBasedConnector{
		config:        config,
		provider:      provider,
		logger:        logger,
		retryExecutor: newRetryExecutor(config, logger),
	}
}

// Connect acquires a token and opens the pool with it.
func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		token, expiresOn, err := c.provider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire token from %s: %w", c.provider, err)
		}

		if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning {
			c.logger.Warn("Token from %s expires in %v", c.provider, remaining.Round(time.Second))
		}
		c.logger.Verbose("Connecting to %s:%d as %s using %s", c.config.Host, c.config.Port, c.config.Username, c.provider)

		withToken := *c.config
		withToken.Password = token

		p, err := openPool(ctx, BuildConnectionString(&withToken), c.config, c.logger, nil)
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
