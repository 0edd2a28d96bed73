package services

import "context"

// FileUploader is the upload collaborator: it takes a local file path and
// returns a hosted URL.
type FileUploader interface {
	Upload(ctx context.Context, localPath, folder string) (string, error)
}
