package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/vvka-141/sheetload/internal/workbook"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

const s3Scheme = "s3://"

// Clean strips surrounding whitespace and double quotes from a typed path.
func Clean(raw string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"`))
}

// Location identifies a workbook.
type Location struct {
	// Path is set for local workbooks.
	Path string

	// Bucket and Key are set for workbooks in S3.
	Bucket string
	Key    string
}

// Parse cleans raw and classifies it as a local path or an S3 object.
func Parse(raw string) (Location, error) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return Location{}, fmt.Errorf("no workbook given: %w", sheetload.ErrInvalidConfig)
	}

	if !strings.HasPrefix(strings.ToLower(cleaned), s3Scheme) {
		return Location{Path: cleaned}, nil
	}

	u, err := url.Parse(cleaned)
	if err != nil {
		return Location{}, fmt.Errorf("invalid S3 URL %q: %v: %w", cleaned, err, sheetload.ErrInvalidConfig)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return Location{}, fmt.Errorf("S3 URL %q must name a bucket and a key: %w", cleaned, sheetload.ErrInvalidConfig)
	}
	return Location{Bucket: u.Host, Key: key}, nil
}

// IsS3 reports whether the workbook lives in S3.
func (l Location) IsS3() bool { return l.Bucket != "" }

func (l Location) String() string {
	if l.IsS3() {
		return s3Scheme + l.Bucket + "/" + l.Key
	}
	return l.Path
}

// ObjectStore is the part of the S3 API the opener uses.
type ObjectStore interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Opener checks and opens workbooks.
type Opener struct {
	newStore func(ctx context.Context) (ObjectStore, error)
	store    ObjectStore
	logger   sheetload.Logger
}

// Option configures an Opener.
type Option func(*Opener)

// WithObjectStore uses store for S3 locations instead of a client built
// from the default AWS configuration.
func WithObjectStore(store ObjectStore) Option {
	return func(o *Opener) {
		o.newStore = func(context.Context) (ObjectStore, error) { return store, nil }
	}
}

// NewOpener creates an Opener. Panics if logger is nil.
func NewOpener(logger sheetload.Logger, opts ...Option) *Opener {
	if logger == nil {
		panic("logger cannot be nil")
	}
	o := &Opener{newStore: defaultStore, logger: logger}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Opener) objectStore(ctx context.Context) (ObjectStore, error) {
	if o.store == nil {
		store, err := o.newStore(ctx)
		if err != nil {
			return nil, err
		}
		o.store = store
	}
	return o.store, nil
}

func defaultStore(ctx context.Context) (ObjectStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Check verifies the workbook exists. A missing workbook yields
// sheetload.ErrInputNotFound.
func (o *Opener) Check(ctx context.Context, loc Location) error {
	if !loc.IsS3() {
		info, err := os.Stat(loc.Path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("file does not exist: %s: %w", loc.Path, sheetload.ErrInputNotFound)
		case err != nil:
			return fmt.Errorf("cannot access %s: %w", loc.Path, err)
		case info.IsDir():
			return fmt.Errorf("%s is a directory: %w", loc.Path, sheetload.ErrInputNotFound)
		}
		return nil
	}

	store, err := o.objectStore(ctx)
	if err != nil {
		return err
	}
	_, err = store.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		var notFound *types.NotFound
		var noKey *types.NoSuchKey
		if errors.As(err, &notFound) || errors.As(err, &noKey) {
			return fmt.Errorf("object does not exist: %s: %w", loc, sheetload.ErrInputNotFound)
		}
		return fmt.Errorf("failed to check %s: %w", loc, err)
	}
	return nil
}

// Open checks the workbook and opens it. A file that is not a readable
// workbook yields sheetload.ErrParseFailed.
func (o *Opener) Open(ctx context.Context, loc Location) (workbook.Book, error) {
	if err := o.Check(ctx, loc); err != nil {
		return nil, err
	}

	if !loc.IsS3() {
		o.logger.Verbose("Opening %s", loc.Path)
		book, err := workbook.Open(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", sheetload.ErrParseFailed, err)
		}
		return book, nil
	}

	store, err := o.objectStore(ctx)
	if err != nil {
		return nil, err
	}

	o.logger.Verbose("Downloading %s", loc)
	out, err := store.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", loc, err)
	}
	defer out.Body.Close()

	book, err := workbook.OpenReader(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sheetload.ErrParseFailed, err)
	}
	return book, nil
}
