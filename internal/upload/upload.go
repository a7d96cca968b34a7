package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// MaxFileSize is the upload ceiling: 5 MiB.
const MaxFileSize = 5 << 20

const pdfMIME = "application/pdf"

var (
	ErrNoFile        = errors.New("no file uploaded")
	ErrMultipleFiles = errors.New("only one file may be uploaded")
	ErrTooLarge      = errors.New("file exceeds the 5MB limit")
	ErrNotPDF        = errors.New("only PDF files are accepted")
)

// File is a validated upload buffered in memory.
type File struct {
	Name    string
	Size    int64
	Content []byte
}

// FromRequest extracts and validates the single PDF under the given multipart
// field. Validation happens before any side effect: exactly one file, at most
// MaxFileSize bytes, declared Content-Type application/pdf.
func FromRequest(r *http.Request, field string) (*File, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(MaxFileSize); err != nil {
			return nil, ErrNoFile
		}
	}

	headers := r.MultipartForm.File[field]
	switch {
	case len(headers) == 0:
		return nil, ErrNoFile
	case len(headers) > 1:
		return nil, ErrMultipleFiles
	}
	header := headers[0]

	if header.Size > MaxFileSize {
		return nil, ErrTooLarge
	}
	if header.Header.Get("Content-Type") != pdfMIME {
		return nil, ErrNotPDF
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(content) > MaxFileSize {
		return nil, ErrTooLarge
	}

	return &File{
		Name:    filepath.Base(header.Filename),
		Size:    int64(len(content)),
		Content: content,
	}, nil
}

// SaveTo writes the file into dir under a timestamped name and returns the
// stored path. Same-millisecond concurrent uploads of the same filename can
// collide; accepted.
func (f *File) SaveTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), f.Name)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, f.Content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
