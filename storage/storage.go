package storage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kbukum/gladiaflow/errors"
)

// DefaultFileName is used for uploads whose binary carries no file name.
const DefaultFileName = "audio.wav"

// Binary is raw audio attached to an item.
// Data travels base64-encoded in JSON documents.
type Binary struct {
	Data     []byte `json:"data"`
	FileName string `json:"fileName,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// BinaryStore yields the binary stored on an item under a field name.
type BinaryStore interface {
	// Binary returns the binary for itemIndex/field, or a MISSING_FIELD
	// AppError when the item has no such binary.
	Binary(ctx context.Context, itemIndex int, field string) (*Binary, error)
}

// NotFound reports that an item carries no binary under field.
func NotFound(itemIndex int, field string) *errors.AppError {
	return errors.New(errors.ErrCodeMissingField,
		fmt.Sprintf("No binary data property %q exists on item %d", field, itemIndex),
		http.StatusBadRequest,
	).WithDetails(map[string]any{"field": field, "item": itemIndex})
}

// Layered consults each store in order and returns the first binary found.
// Errors other than MISSING_FIELD stop the search.
type Layered []BinaryStore

// Binary implements BinaryStore.
func (l Layered) Binary(ctx context.Context, itemIndex int, field string) (*Binary, error) {
	for _, s := range l {
		b, err := s.Binary(ctx, itemIndex, field)
		if err == nil {
			return b, nil
		}
		if !errors.HasCode(err, errors.ErrCodeMissingField) {
			return nil, err
		}
	}
	return nil, NotFound(itemIndex, field)
}
