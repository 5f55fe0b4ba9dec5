package audio

import (
	"context"

	"github.com/juniorlingo/english-agent/internal/config"
)

// URLPrefix is where the HTTP server mounts the local audio directory.
const URLPrefix = "/audio"

type Store interface {
	// Save stores data under name, replacing any existing file, and returns
	// the URL a client can fetch it from.
	Save(ctx context.Context, name string, data []byte) (string, error)
}

var (
	_ Store = &LocalStore{}
	_ Store = &S3Store{}
)

// NewStore returns an S3Store when a bucket is configured and a LocalStore
// otherwise. localDir is empty for S3.
func NewStore(ctx context.Context, cfg config.AudioConfig) (store Store, localDir string, err error) {
	if cfg.UseS3() {
		s3Store, err := NewS3Store(ctx, S3Config{
			Bucket:            cfg.S3Bucket,
			PublicBaseURL:     cfg.PublicBaseURL,
			S3EndpointURL:     cfg.S3EndpointURL,
			S3AccessKeyID:     cfg.S3AccessKeyID,
			S3SecretAccessKey: cfg.S3SecretAccessKey,
			S3Region:          cfg.S3Region,
		})
		if err != nil {
			return nil, "", err
		}
		return s3Store, "", nil
	}

	local, err := NewLocalStore(cfg.Dir, URLPrefix)
	if err != nil {
		return nil, "", err
	}
	return local, local.Dir(), nil
}
