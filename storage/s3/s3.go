// Package s3 resolves item binaries from objects in an S3 (or
// S3-compatible) bucket.
package s3

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"

	"github.com/kbukum/gladiaflow/errors"
	"github.com/kbukum/gladiaflow/storage"
	"github.com/kbukum/gladiaflow/util"
)

// API is the subset of the S3 client the store calls.
type API interface {
	GetObject(ctx context.Context, in *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
}

// Ref points an item field at an object key in the store's bucket.
type Ref struct {
	Key string `json:"key" yaml:"key"`
	// FileName defaults to the base name of Key.
	FileName string `json:"fileName,omitempty" yaml:"fileName"`
	// MimeType falls back to the object's Content-Type, then to sniffing.
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType"`
}

// Store implements storage.BinaryStore over an S3 bucket.
type Store struct {
	api         API
	bucket      string
	maxFileSize int64

	mu   sync.RWMutex
	refs map[int]map[string]Ref
}

// NewClient builds an S3 client from cfg.
func NewClient(ctx context.Context, cfg Config) (*awss3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	return awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		if cfg.ForcePathStyle {
			o.UsePathStyle = true
		}
	}), nil
}

// NewStore creates a Store reading from bucket through api. maxFileSize
// falls back to storage.DefaultMaxFileSize when not positive.
func NewStore(api API, bucket string, maxFileSize int64) *Store {
	if maxFileSize <= 0 {
		maxFileSize = storage.DefaultMaxFileSize
	}
	return &Store{
		api:         api,
		bucket:      bucket,
		maxFileSize: maxFileSize,
		refs:        make(map[int]map[string]Ref),
	}
}

// Put registers an object reference for itemIndex under field.
func (s *Store) Put(itemIndex int, field string, ref Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.refs[itemIndex]
	if !ok {
		fields = make(map[string]Ref)
		s.refs[itemIndex] = fields
	}
	fields[field] = ref
}

// Binary downloads the referenced object.
func (s *Store) Binary(ctx context.Context, itemIndex int, field string) (*storage.Binary, error) {
	s.mu.RLock()
	ref, ok := s.refs[itemIndex][field]
	s.mu.RUnlock()
	if !ok {
		return nil, storage.NotFound(itemIndex, field)
	}

	out, err := s.api.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if stderrors.As(err, &nsk) {
			return nil, errors.InvalidInput(field, fmt.Sprintf("object not found: s3://%s/%s", s.bucket, ref.Key))
		}
		return nil, fmt.Errorf("storage: s3 download: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("storage: s3 read: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, errors.InvalidInput(field,
			fmt.Sprintf("object %s exceeds the %d byte limit", ref.Key, s.maxFileSize))
	}

	b := &storage.Binary{
		Data:     data,
		FileName: util.Coalesce(ref.FileName, path.Base(ref.Key)),
		MimeType: util.Coalesce(ref.MimeType, aws.ToString(out.ContentType)),
	}
	if b.MimeType == "" {
		b.MimeType = mimetype.Detect(data).String()
	}
	return b, nil
}

var _ storage.BinaryStore = (*Store)(nil)
