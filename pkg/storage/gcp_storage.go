package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCPStorage struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
}

func NewGCPStorage(bucket, credentialsFile, cdnDomain string) (*GCPStorage, error) {
	ctx := context.Background()

	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	return &GCPStorage{
		client:    client,
		bucket:    bucket,
		cdnDomain: cdnDomain,
	}, nil
}

func (g *GCPStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	bucket := g.client.Bucket(g.bucket)
	object := bucket.Object(request.Key)

	writer := object.NewWriter(ctx)
	writer.ContentType = request.ContentType

	if len(request.Metadata) > 0 {
		writer.Metadata = request.Metadata
	}

	if request.CacheControl != "" {
		writer.CacheControl = request.CacheControl
	}

	size, err := io.Copy(writer, request.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to write to GCP storage: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	// Tickets and QR codes are served straight from the bucket.
	if err := object.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return nil, fmt.Errorf("failed to make object public: %w", err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  g.PublicURL(request.Key),
		Size: size,
	}, nil
}

func (g *GCPStorage) Download(ctx context.Context, key string) (*DownloadResponse, error) {
	bucket := g.client.Bucket(g.bucket)
	object := bucket.Object(key)

	reader, err := object.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}

	attrs, err := object.Attrs(ctx)
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("failed to get object attributes: %w", err)
	}

	return &DownloadResponse{
		Reader:       reader,
		Size:         attrs.Size,
		ContentType:  attrs.ContentType,
		Metadata:     attrs.Metadata,
		LastModified: attrs.Updated,
		ETag:         attrs.Etag,
	}, nil
}

func (g *GCPStorage) Delete(ctx context.Context, key string) error {
	bucket := g.client.Bucket(g.bucket)
	object := bucket.Object(key)

	err := object.Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete from GCP storage: %w", err)
	}

	return nil
}

func (g *GCPStorage) FileExists(ctx context.Context, key string) (bool, error) {
	bucket := g.client.Bucket(g.bucket)
	object := bucket.Object(key)

	_, err := object.Attrs(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (g *GCPStorage) PublicURL(key string) string {
	if g.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", g.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, key)
}
