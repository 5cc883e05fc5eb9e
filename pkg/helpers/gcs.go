package helpers

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// GCSObjectStore reads profile photos from one bucket
type GCSObjectStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSObjectStore(client *storage.Client, bucket string) *GCSObjectStore {
	return &GCSObjectStore{Client: client, Bucket: bucket}
}

// Open returns the object body and its content type. The caller closes the reader.
// A missing object is reported as storage.ErrObjectNotExist.
func (s *GCSObjectStore) Open(ctx context.Context, object string) (io.ReadCloser, string, error) {
	r, err := s.Client.Bucket(s.Bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, "", err
	}
	ct := r.Attrs.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return r, ct, nil
}
