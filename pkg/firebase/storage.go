package firebase

import (
	"context"
	"fmt"
	"net/url"

	gcs "cloud.google.com/go/storage"
)

// StorageUploader writes media objects into the app's Firebase Storage bucket.
type StorageUploader struct {
	bucket *gcs.BucketHandle
	name   string
}

// NewStorageUploader opens the default bucket of the app.
func (a *App) NewStorageUploader(ctx context.Context) (*StorageUploader, error) {
	client, err := a.FirebaseApp.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error opening storage bucket %s: %w", a.Bucket, err)
	}
	return &StorageUploader{bucket: bucket, name: a.Bucket}, nil
}

// Upload stores data under name and returns its public URL.
func (u *StorageUploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	w := u.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object writer: %w", err)
	}
	return ObjectURL(u.name, name), nil
}

// ObjectURL is the public download URL of an object.
func ObjectURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, (&url.URL{Path: object}).EscapedPath())
}
