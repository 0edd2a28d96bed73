package handlers

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// saveFormFile stages an uploaded form file under the OS temp dir and returns
// its local path. Callers remove the file once the upload pipeline is done.
func saveFormFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	dst := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// removeIfPresent deletes a staged temp file, ignoring empty paths.
func removeIfPresent(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}
