package s3

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/vidtube/vidtube_backend/internal/platform/config"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
)

// Uploader stores local files in an S3-compatible bucket (e.g. MinIO) and
// returns the public URL they are served from.
type Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

var _ portssvc.FileUploader = (*Uploader)(nil)

// NewUploader builds the S3 client from static credentials and a custom base
// endpoint, the way MinIO deployments are addressed.
func NewUploader(ctx context.Context, cfg *appconfig.Config) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = true
	})

	publicBase := cfg.S3PublicBaseURL
	if publicBase == "" {
		publicBase = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}

	return &Uploader{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

// storageKey spreads objects across date-based prefixes.
func storageKey(folder, localPath string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s", folder, d.Year(), d.Month(), d.Day(), uuid.NewString(), filepath.Ext(localPath))
}

// Upload puts the file at localPath into the bucket and returns its hosted URL.
func (u *Uploader) Upload(ctx context.Context, localPath, folder string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open upload file: %w", err)
	}
	defer f.Close()

	key := storageKey(folder, localPath)
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return u.publicBaseURL + "/" + key, nil
}
