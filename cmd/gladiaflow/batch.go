package main

import (
	"encoding/base64"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/gladiaflow/storage"
	"github.com/kbukum/gladiaflow/storage/local"
	"github.com/kbukum/gladiaflow/storage/s3"
	"github.com/kbukum/gladiaflow/transcription"
)

// batchFile is the document read by the run command. JSON files decode
// the same way since the YAML decoder accepts JSON.
type batchFile struct {
	ContinueOnFail *bool       `yaml:"continueOnFail"`
	Items          []batchItem `yaml:"items"`
}

type batchItem struct {
	Params transcription.Params   `yaml:"params"`
	Binary map[string]binaryEntry `yaml:"binary"`
}

// binaryEntry attaches audio to an item from a file under the base
// directory, an object key in the configured bucket, or inline base64 data.
type binaryEntry struct {
	Path     string `yaml:"path"`
	Key      string `yaml:"key"`
	Data     string `yaml:"data"`
	FileName string `yaml:"fileName"`
	MimeType string `yaml:"mimeType"`
}

func decodeBatch(r io.Reader) (*batchFile, error) {
	var b batchFile
	if err := yaml.NewDecoder(r).Decode(&b); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("batch file is empty")
		}
		return nil, fmt.Errorf("decode batch file: %w", err)
	}
	if len(b.Items) == 0 {
		return nil, fmt.Errorf("batch file has no items")
	}
	return &b, nil
}

// binarySources are the stores batch entries resolve against. objects is
// nil when no bucket is configured.
type binarySources struct {
	files   *local.Store
	objects *s3.Store
}

// prepare splits the batch into item params and a binary store. Inline data
// wins over file references, which win over object keys. wait, when not
// nil, fills waitForCompletion on items that leave it unset.
func (b *batchFile) prepare(src binarySources, wait *bool) ([]transcription.Params, storage.BinaryStore, error) {
	inline := storage.NewMemoryStore()
	items := make([]transcription.Params, len(b.Items))

	for i, item := range b.Items {
		items[i] = item.Params
		if items[i].WaitForCompletion == nil && wait != nil {
			w := *wait
			items[i].WaitForCompletion = &w
		}

		for field, entry := range item.Binary {
			switch {
			case entry.Data != "":
				data, err := base64.StdEncoding.DecodeString(entry.Data)
				if err != nil {
					return nil, nil, fmt.Errorf("item %d binary %q: invalid base64: %w", i, field, err)
				}
				inline.Put(i, field, storage.Binary{Data: data, FileName: entry.FileName, MimeType: entry.MimeType})
			case entry.Path != "":
				src.files.Put(i, field, local.Ref{Path: entry.Path, FileName: entry.FileName, MimeType: entry.MimeType})
			case entry.Key != "":
				if src.objects == nil {
					return nil, nil, fmt.Errorf("item %d binary %q: key given but storage.s3.bucket is not configured", i, field)
				}
				src.objects.Put(i, field, s3.Ref{Key: entry.Key, FileName: entry.FileName, MimeType: entry.MimeType})
			default:
				return nil, nil, fmt.Errorf("item %d binary %q: one of path, key or data is required", i, field)
			}
		}
	}

	layers := storage.Layered{inline, src.files}
	if src.objects != nil {
		layers = append(layers, src.objects)
	}
	return items, layers, nil
}
