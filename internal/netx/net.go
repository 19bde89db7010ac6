// Package netx holds request-body helpers for the HTTP client.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
)

// MultipartFile encodes content as a single-file multipart/form-data body
// under field. It returns the body and the Content-Type header (with
// boundary) to send alongside it.
func MultipartFile(field, fileName string, content io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filepath.Base(fileName))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("copy file content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
