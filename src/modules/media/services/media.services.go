package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Asset identifies an uploaded image: a public URL plus the opaque handle
// needed to delete it.
type Asset struct {
	URL string
	ID  string
}

// Upload is an image payload on its way to the media store.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// IsImage reports whether the sniffed content type is an image.
func (u *Upload) IsImage() bool {
	return strings.HasPrefix(u.ContentType, "image/")
}

// Ext returns a file extension for the object key, preferring the sniffed type.
func (u *Upload) Ext() string {
	if mt := mimetype.Lookup(u.ContentType); mt != nil && mt.Extension() != "" {
		return mt.Extension()
	}
	return strings.ToLower(filepath.Ext(u.Filename))
}

// Store uploads and deletes images at an external host. Upload and Delete
// are independent calls.
type Store interface {
	Upload(ctx context.Context, upload *Upload) (*Asset, error)
	Delete(ctx context.Context, id string) error
}

// FromFileHeader buffers a multipart file and sniffs its content type.
func FromFileHeader(fh *multipart.FileHeader) (*Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return &Upload{
		Filename:    fh.Filename,
		ContentType: mimetype.Detect(data).String(),
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	}, nil
}
