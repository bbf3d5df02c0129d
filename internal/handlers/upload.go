package handlers

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// stageUploadedFile copies a multipart upload to a unique temp path.
// The caller hands the path to the storage client, which removes it
// again whatever the upload outcome.
func stageUploadedFile(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	localPath := filepath.Join(os.TempDir(), uuid.NewString()+"_"+filepath.Base(fileHeader.Filename))
	dst, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		os.Remove(localPath)
		return "", err
	}
	return localPath, nil
}
