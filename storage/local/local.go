// Package local resolves item binaries from files on disk.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/kbukum/gladiaflow/errors"
	"github.com/kbukum/gladiaflow/storage"
	"github.com/kbukum/gladiaflow/util"
)

// Ref points an item field at a file under the store's base path.
type Ref struct {
	Path string `json:"path" yaml:"path"`
	// FileName defaults to the base name of Path.
	FileName string `json:"fileName,omitempty" yaml:"fileName"`
	// MimeType is sniffed from the file content when empty.
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType"`
}

// Store implements storage.BinaryStore over the local filesystem.
type Store struct {
	basePath    string
	maxFileSize int64

	mu   sync.RWMutex
	refs map[int]map[string]Ref
}

// NewStore creates a Store rooted at cfg.BasePath.
func NewStore(cfg storage.Config) (*Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve base path: %w", err)
	}
	return &Store{
		basePath:    abs,
		maxFileSize: cfg.MaxFileSize,
		refs:        make(map[int]map[string]Ref),
	}, nil
}

// Put registers a file reference for itemIndex under field.
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

// Binary reads the referenced file. Paths never escape the base path.
func (s *Store) Binary(_ context.Context, itemIndex int, field string) (*storage.Binary, error) {
	s.mu.RLock()
	ref, ok := s.refs[itemIndex][field]
	s.mu.RUnlock()
	if !ok {
		return nil, storage.NotFound(itemIndex, field)
	}

	fullPath := filepath.Join(s.basePath, filepath.Clean(string(filepath.Separator)+ref.Path))
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.InvalidInput(field, fmt.Sprintf("file not found: %s", ref.Path))
		}
		return nil, fmt.Errorf("storage: stat file: %w", err)
	}
	if info.Size() > s.maxFileSize {
		return nil, errors.InvalidInput(field,
			fmt.Sprintf("file %s is %d bytes, limit is %d", ref.Path, info.Size(), s.maxFileSize))
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("storage: read file: %w", err)
	}

	b := &storage.Binary{
		Data:     data,
		FileName: util.Coalesce(ref.FileName, filepath.Base(fullPath)),
		MimeType: ref.MimeType,
	}
	if b.MimeType == "" {
		b.MimeType = mimetype.Detect(data).String()
	}
	return b, nil
}

var _ storage.BinaryStore = (*Store)(nil)
