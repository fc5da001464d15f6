package cloudexport

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
)

// Exporter copies generated wallpapers into a Cloud Storage bucket.
type Exporter struct {
	svc    *storage.Service
	bucket string
	prefix string
}

func New(svc *storage.Service, bucket, prefix string) *Exporter {
	return &Exporter{svc: svc, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func NewFromJSON(ctx context.Context, serviceAccountJSON []byte, bucket, prefix string) (*Exporter, error) {
	if len(serviceAccountJSON) == 0 {
		return nil, fmt.Errorf("empty service account JSON")
	}
	if bucket == "" {
		return nil, fmt.Errorf("empty bucket name")
	}
	creds, err := google.CredentialsFromJSON(ctx, serviceAccountJSON, storage.DevstorageReadWriteScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}
	svc, err := storage.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, err
	}
	return New(svc, bucket, prefix), nil
}

func NewFromFile(ctx context.Context, credentialsPath, bucket, prefix string) (*Exporter, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return NewFromJSON(ctx, data, bucket, prefix)
}

// Export uploads data as name under the configured prefix and returns the
// gs:// URI of the stored object.
func (e *Exporter) Export(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("nothing to export")
	}
	objectName := name
	if e.prefix != "" {
		objectName = path.Join(e.prefix, name)
	}

	obj, err := e.svc.Objects.Insert(e.bucket, &storage.Object{
		Name:        objectName,
		ContentType: mimeType,
	}).Media(bytes.NewReader(data)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	return "gs://" + obj.Bucket + "/" + obj.Name, nil
}
