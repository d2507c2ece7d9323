package s3

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/kbukum/gladiaflow/errors"
)

var wavHeader = []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00")

type object struct {
	data        []byte
	contentType string
}

type fakeAPI struct {
	objects map[string]object
	err     error
	gotKeys []string
}

func (f *fakeAPI) GetObject(_ context.Context, in *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.gotKeys = append(f.gotKeys, aws.ToString(in.Bucket)+"/"+key)
	if f.err != nil {
		return nil, f.err
	}
	obj, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	out := &awss3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(obj.data))}
	if obj.contentType != "" {
		out.ContentType = aws.String(obj.contentType)
	}
	return out, nil
}

func TestStore_Binary(t *testing.T) {
	api := &fakeAPI{objects: map[string]object{
		"calls/a.wav": {data: wavHeader},
		"calls/b":     {data: []byte("ID3"), contentType: "audio/mpeg"},
	}}
	s := NewStore(api, "recordings", 0)
	s.Put(0, "data", Ref{Key: "calls/a.wav"})
	s.Put(1, "data", Ref{Key: "calls/b", FileName: "b.mp3"})

	b, err := s.Binary(context.Background(), 0, "data")
	if err != nil {
		t.Fatalf("Binary() error: %v", err)
	}
	if b.FileName != "a.wav" || b.MimeType != "audio/wav" {
		t.Errorf("binary 0 = %q %q", b.FileName, b.MimeType)
	}

	b, err = s.Binary(context.Background(), 1, "data")
	if err != nil {
		t.Fatalf("Binary() error: %v", err)
	}
	if b.FileName != "b.mp3" || b.MimeType != "audio/mpeg" {
		t.Errorf("binary 1 = %q %q", b.FileName, b.MimeType)
	}
	if api.gotKeys[0] != "recordings/calls/a.wav" {
		t.Errorf("requested %v", api.gotKeys)
	}
}

func TestStore_Errors(t *testing.T) {
	api := &fakeAPI{objects: map[string]object{"big.wav": {data: make([]byte, 64)}}}
	s := NewStore(api, "recordings", 32)
	s.Put(0, "data", Ref{Key: "gone.wav"})
	s.Put(1, "data", Ref{Key: "big.wav"})

	if _, err := s.Binary(context.Background(), 0, "other"); !errors.HasCode(err, errors.ErrCodeMissingField) {
		t.Errorf("unknown field error = %v", err)
	}
	if _, err := s.Binary(context.Background(), 0, "data"); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing object error = %v", err)
	}
	if _, err := s.Binary(context.Background(), 1, "data"); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("oversized object error = %v", err)
	}

	api.err = stderrors.New("connection reset")
	_, err := s.Binary(context.Background(), 1, "data")
	if err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("transport error = %v", err)
	}
}

func TestConfig(t *testing.T) {
	var c Config
	if c.Enabled() || c.Validate() != nil {
		t.Error("zero config should be disabled and valid")
	}
	c = Config{Bucket: "b", AccessKey: "id"}
	c.ApplyDefaults()
	if c.Region != DefaultRegion {
		t.Errorf("Region = %q", c.Region)
	}
	if err := c.Validate(); err == nil {
		t.Error("expected error for access key without secret")
	}
}
