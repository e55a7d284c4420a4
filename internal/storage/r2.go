package storage

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Client pulls trained-model artifacts from an S3-compatible bucket
// (Cloudflare R2). The trainer publishes artifacts there; the API syncs
// them into the local model directory before loading.
type R2Client struct {
	client *s3.Client
	bucket string
	prefix string
}

// Configured reports whether the artifact-store env vars are present.
func Configured() bool {
	return os.Getenv("R2_ENDPOINT") != "" &&
		os.Getenv("R2_ACCESS_KEY") != "" &&
		os.Getenv("R2_SECRET_KEY") != "" &&
		os.Getenv("R2_BUCKET_NAME") != ""
}

func NewR2Client(ctx context.Context) (*R2Client, error) {
	endpoint := os.Getenv("R2_ENDPOINT")
	accessKey := os.Getenv("R2_ACCESS_KEY")
	secretKey := os.Getenv("R2_SECRET_KEY")
	bucket := os.Getenv("R2_BUCKET_NAME")
	prefix := os.Getenv("R2_ARTIFACT_PREFIX")

	if endpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, errors.New("artifact store not configured")
	}

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				accessKey,
				secretKey,
				"",
			),
		),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					if service == s3.ServiceID {
						return aws.Endpoint{
							URL:           endpoint,
							SigningRegion: "auto",
						}, nil
					}
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				},
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &R2Client{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Download fetches one object by key (relative to the artifact prefix).
func (r *R2Client) Download(ctx context.Context, key string) ([]byte, error) {
	fullKey := key
	if r.prefix != "" {
		fullKey = r.prefix + "/" + key
	}

	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &r.bucket,
		Key:    &fullKey,
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// SyncArtifacts downloads the named artifacts into dir. A missing object is
// logged and skipped so one absent artifact only degrades its own
// capability.
func (r *R2Client) SyncArtifacts(ctx context.Context, dir string, names []string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, name := range names {
		data, err := r.Download(ctx, name)
		if err != nil {
			log.Printf("⚠️  Artifact %s not fetched: %v", name, err)
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return err
		}
		log.Printf("✅ Artifact synced: %s", name)
	}

	return nil
}
