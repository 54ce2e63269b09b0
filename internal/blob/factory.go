package blob

import (
	"context"
	"fmt"

	"hostelcore/internal/infra/blob/fs"
	"hostelcore/internal/infra/blob/memory"
	"hostelcore/internal/infra/blob/s3"
)

// S3Options configures the S3 driver.
type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// Options selects and configures a backend.
type Options struct {
	Driver Driver
	FSRoot string
	S3     S3Options
}

// Open returns the Store named by opts.Driver. An empty driver selects the
// filesystem backend rooted at FSRoot (default ./blobdata).
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverFilesystem:
		return fs.New(opts.FSRoot)
	case DriverMemory:
		return memory.New(), nil
	case DriverS3:
		return s3.New(ctx, s3.Config{
			Bucket:          opts.S3.Bucket,
			Region:          opts.S3.Region,
			Endpoint:        opts.S3.Endpoint,
			AccessKeyID:     opts.S3.AccessKeyID,
			SecretAccessKey: opts.S3.SecretAccessKey,
			PathStyle:       opts.S3.PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown blob driver %q", opts.Driver)
	}
}
