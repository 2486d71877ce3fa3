package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// EnvVars holds the environment variables that take part in connection resolution.
type EnvVars struct {
	SHEETLOAD_CONNECTION_STRING string // Connection string when none is configured
	DATABASE_URL                string // Last-resort connection string (Heroku/Rails convention)
	PGPASSWORD                  string // Password when the connection string carries none
	PGSSLMODE                   string // SSL mode when the connection string carries none

	AWS_REGION         string
	AWS_DEFAULT_REGION string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string // Only ever read from the environment
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		SHEETLOAD_CONNECTION_STRING: os.Getenv("SHEETLOAD_CONNECTION_STRING"),
		DATABASE_URL:                os.Getenv("DATABASE_URL"),
		PGPASSWORD:                  os.Getenv("PGPASSWORD"),
		PGSSLMODE:                   os.Getenv("PGSSLMODE"),
		AWS_REGION:                  os.Getenv("AWS_REGION"),
		AWS_DEFAULT_REGION:          os.Getenv("AWS_DEFAULT_REGION"),
		AZURE_TENANT_ID:             os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:             os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET:         os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// SelectConnectionString applies the connection string precedence:
// flag, then the configured value, then $SHEETLOAD_CONNECTION_STRING,
// then $DATABASE_URL.
func SelectConnectionString(flag, configured string, env *EnvVars) string {
	if env == nil {
		env = &EnvVars{}
	}
	for _, candidate := range []string{flag, configured, env.SHEETLOAD_CONNECTION_STRING, env.DATABASE_URL} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return ""
}

// ResolveConnection turns the destination settings into a ConnectionConfig.
//
// The connection string is parsed first; environment variables fill in what
// it leaves out (password, SSL mode, cloud identifiers), and settings override
// the environment for the cloud identifiers. SSL mode defaults to "prefer".
func ResolveConnection(settings sheetload.SQLSettings, env *EnvVars) (*sheetload.ConnectionConfig, error) {
	if env == nil {
		env = &EnvVars{}
	}

	if strings.TrimSpace(settings.ConnectionString) == "" {
		return nil, fmt.Errorf("no connection string: set SqlSettings.ConnectionString, --connection or $SHEETLOAD_CONNECTION_STRING: %w", sheetload.ErrInvalidConfig)
	}

	config, err := ParseConnectionString(settings.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	method, err := sheetload.ParseAuthMethod(settings.AuthMethod)
	if err != nil {
		return nil, err
	}
	config.AuthMethod = method
	config.ConnectRetries = settings.ConnectRetries

	if config.SSLMode == "" {
		config.SSLMode = env.PGSSLMODE
	}
	if config.SSLMode == "" {
		config.SSLMode = "prefer"
	}

	if config.Password == "" && method == sheetload.AuthMethodStandard {
		config.Password = env.PGPASSWORD
	}

	switch method {
	case sheetload.AuthMethodAWSIAM:
		config.AWSRegion = firstNonEmpty(settings.AWSRegion, env.AWS_REGION, env.AWS_DEFAULT_REGION)
	case sheetload.AuthMethodAzureEntraID:
		config.AzureTenantID = firstNonEmpty(settings.AzureTenantID, env.AZURE_TENANT_ID)
		config.AzureClientID = firstNonEmpty(settings.AzureClientID, env.AZURE_CLIENT_ID)
		config.AzureClientSecret = env.AZURE_CLIENT_SECRET
	case sheetload.AuthMethodGoogleIAM:
		config.GoogleInstance = settings.GoogleInstance
	}

	return config, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
