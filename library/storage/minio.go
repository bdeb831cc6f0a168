package storage

import (
	"bytes"
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v5"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioOptions carries the object storage connection settings.
type MinioOptions struct {
	Endpoint,
	AccessKey,
	SecretKey,
	Bucket string
	UseSSL bool
}

// Minio stores payloads as objects in a single bucket.
type Minio struct {
	cli    *minio.Client
	bucket string
}

// NewMinio connects the client and verifies the bucket exists.
func NewMinio(ctx context.Context, opt MinioOptions) (*Minio, error) {
	cli, err := minio.New(opt.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opt.AccessKey, opt.SecretKey, ""),
		Secure: opt.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "new minio client")
	}

	ok, err := cli.BucketExists(ctx, opt.Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "check bucket %q", opt.Bucket)
	}
	if !ok {
		return nil, errors.Errorf("bucket %q does not exist", opt.Bucket)
	}

	return &Minio{cli: cli, bucket: opt.Bucket}, nil
}

// Put uploads the payload under a fresh UUID object key.
func (s *Minio) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	key := gutils.UUID7()
	if _, err := s.cli.PutObject(ctx, s.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	); err != nil {
		return "", errors.Wrapf(err, "put object %q", key)
	}

	return s.bucket + "/" + key, nil
}

// IsAlive reports whether the bucket still answers.
func (s *Minio) IsAlive(ctx context.Context) bool {
	ok, err := s.cli.BucketExists(ctx, s.bucket)
	return err == nil && ok
}
