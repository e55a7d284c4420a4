package storage

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const artifactContentType = "application/json"

// Upload writes one artifact object under the configured prefix.
func (r *R2Client) Upload(ctx context.Context, key string, data []byte) error {
	fullKey := key
	if r.prefix != "" {
		fullKey = r.prefix + "/" + key
	}

	contentType := artifactContentType
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &r.bucket,
		Key:         &fullKey,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})

	return err
}

// PublishArtifacts uploads the named files from dir to the artifact store.
// Used by the trainer after writing a fresh model set.
func (r *R2Client) PublishArtifacts(ctx context.Context, dir string, names []string) error {
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := r.Upload(ctx, name, data); err != nil {
			return err
		}
		log.Printf("✅ Artifact published: %s", name)
	}

	return nil
}
