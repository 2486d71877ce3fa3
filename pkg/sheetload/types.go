package sheetload

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Field is a resolved column definition derived from a worksheet header.
type Field struct {
	// ColumnPosition is the 1-based column index in the worksheet.
	ColumnPosition int

	// Name is the raw header text, or the synthesized name when no header row is used.
	Name string

	// Key is the normalized identifier used as the destination column name.
	// Never empty and unique (case-insensitive) within one worksheet.
	Key string
}

// RecordValue is one field value of an ImportRecord. A nil Value models SQL NULL.
type RecordValue struct {
	FieldKey string
	Value    *string
}

// IsPopulated reports whether the value is non-null and non-empty.
func (v RecordValue) IsPopulated() bool {
	return v.Value != nil && *v.Value != ""
}

// ImportRecord is one non-blank data row.
type ImportRecord struct {
	WorksheetName string

	// RowPosition is the 1-based walk counter over the data rows,
	// blank rows included. It is not the absolute sheet row number.
	RowPosition int

	Values []RecordValue
}

// Get returns the value stored under key (case-insensitive).
func (r ImportRecord) Get(key string) (*string, bool) {
	for _, v := range r.Values {
		if strings.EqualFold(v.FieldKey, key) {
			return v.Value, true
		}
	}
	return nil, false
}

// FieldNameReplacement is an ordered, case-insensitive literal text substitution
// applied to header names before normalization.
type FieldNameReplacement struct {
	Match       string `yaml:"Match"`
	Replacement string `yaml:"Replacement"`
}

// ParseSettings controls how worksheets are turned into records.
// Treated as an immutable snapshot by the extraction engine.
type ParseSettings struct {
	SkipBlankRows                     bool                   `yaml:"SkipBlankRows"`
	SkipBlankColumns                  bool                   `yaml:"SkipBlankColumns"`
	StartAtRow                        int                    `yaml:"StartAtRow"`
	FirstRowIsHeader                  bool                   `yaml:"FirstRowIsHeader"`
	SkipHiddenWorksheets              bool                   `yaml:"SkipHiddenWorksheets"`
	AllWorksheets                     bool                   `yaml:"AllWorksheets"`
	StripFieldNameToAlphaAndNumeric   bool                   `yaml:"StripFieldNameToAlphaAndNumeric"`
	FieldNameCharacterLimit           int                    `yaml:"FieldNameCharacterLimit"`
	FieldNameOverLimitSplitFiftyFifty bool                   `yaml:"FieldNameOverLimitSplitFiftyFifty"`
	TrimWhiteSpaceFromValues          bool                   `yaml:"TrimWhiteSpaceFromValues"`
	DeduplicateFieldNames             bool                   `yaml:"DeduplicateFieldNames"`
	LimitToOnlySheets                 []string               `yaml:"LimitToOnlySheets"`
	ExcludeSheets                     []string               `yaml:"ExcludeSheets"`
	FieldNameReplacements             []FieldNameReplacement `yaml:"FieldNameReplacements"`
}

// DefaultParseSettings returns the settings used when nothing is configured.
func DefaultParseSettings() ParseSettings {
	return ParseSettings{
		StartAtRow:                        1,
		FirstRowIsHeader:                  true,
		SkipHiddenWorksheets:              true,
		AllWorksheets:                     true,
		StripFieldNameToAlphaAndNumeric:   true,
		FieldNameCharacterLimit:           DefaultFieldNameCharacterLimit,
		FieldNameOverLimitSplitFiftyFifty: true,
		TrimWhiteSpaceFromValues:          true,
		DeduplicateFieldNames:             true,
	}
}

// Validate checks the settings for values the extraction engine cannot honour.
func (s ParseSettings) Validate() error {
	var errs []error

	if s.StartAtRow < 1 {
		errs = append(errs, fmt.Errorf("StartAtRow must be at least 1, got %d: %w", s.StartAtRow, ErrInvalidConfig))
	}
	if s.FieldNameCharacterLimit < 1 {
		errs = append(errs, fmt.Errorf("FieldNameCharacterLimit must be positive, got %d: %w", s.FieldNameCharacterLimit, ErrInvalidConfig))
	}
	for i, r := range s.FieldNameReplacements {
		if r.Match == "" {
			errs = append(errs, fmt.Errorf("FieldNameReplacements[%d] has an empty Match: %w", i, ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// SQLSettings describes the destination of a load.
type SQLSettings struct {
	ConnectionString string `yaml:"ConnectionString"`
	SchemaName       string `yaml:"SchemaName"`

	// TableName is a literal name or a template containing WorksheetNamePlaceholder.
	TableName string `yaml:"TableName"`

	// DropTable drops an existing table of the same qualified name before creating it.
	DropTable bool `yaml:"DropTable"`

	// Force skips the interactive confirmation before dropping tables.
	Force bool `yaml:"Force"`

	// ConnectRetries is the number of retries for transient connection failures.
	ConnectRetries int `yaml:"ConnectRetries"`

	AuthMethod     string `yaml:"AuthMethod"`
	AWSRegion      string `yaml:"AWSRegion"`
	AzureTenantID  string `yaml:"AzureTenantID"`
	AzureClientID  string `yaml:"AzureClientID"`
	GoogleInstance string `yaml:"GoogleInstance"`
}

// DefaultSQLSettings returns the destination defaults.
func DefaultSQLSettings() SQLSettings {
	return SQLSettings{
		SchemaName: DefaultSchemaName,
		AuthMethod: "standard",
	}
}

// PerWorksheet reports whether the table name is a per-worksheet template.
func (s SQLSettings) PerWorksheet() bool {
	return strings.Contains(strings.ToLower(s.TableName), strings.ToLower(WorksheetNamePlaceholder))
}

// LoadConfig contains everything needed to run one workbook import.
type LoadConfig struct {
	// Source is a local workbook path or an s3://bucket/key URL.
	Source string

	// RunID tags the summary. A random one is generated when empty.
	RunID string

	Parse ParseSettings
	SQL   SQLSettings

	// DryRun parses the workbook and reports results without touching the database.
	DryRun bool

	// Timeout bounds the whole run.
	Timeout time.Duration

	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.Source == "" {
		errs = append(errs, fmt.Errorf("Source is required: %w", ErrInvalidConfig))
	}

	if err := c.Parse.Validate(); err != nil {
		errs = append(errs, err)
	}

	if !c.DryRun {
		if c.SQL.ConnectionString == "" {
			errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
		}
		if strings.TrimSpace(c.SQL.TableName) == "" {
			errs = append(errs, fmt.Errorf("TableName is required: %w", ErrInvalidConfig))
		}
		if _, err := ParseAuthMethod(c.SQL.AuthMethod); err != nil {
			errs = append(errs, err)
		}
	}

	if c.SQL.Force && !c.SQL.DropTable {
		errs = append(errs, fmt.Errorf("force requires DropTable to be enabled: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	AuthMethod AuthMethod

	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// ConnectRetries is the number of retries on transient connection errors.
	ConnectRetries int

	// Cloud IAM parameters, used only by the matching AuthMethod.
	AWSRegion         string
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
	GoogleInstance    string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS RDS IAM
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Entra ID
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// ParseAuthMethod maps a configuration value to an AuthMethod.
// An empty value means standard authentication.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam":
		return AuthMethodAWSIAM, nil
	case "google", "gcp", "google-iam":
		return AuthMethodGoogleIAM, nil
	case "azure", "entra", "azure-entra-id":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("%q: %w", s, ErrUnsupportedAuthMethod)
	}
}
