package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// SavePhotoLocally writes an uploaded report photo under uploads/ and returns
// the path to serve it from. Used when R2 is not configured.
func SavePhotoLocally(fileHeader *multipart.FileHeader, key string) (string, error) {
	destPath := filepath.Join("uploads", key)
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(destPath), nil
}
