package media

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type objectOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, int64, string, error)
}

// FileController proxies bucket objects for deployments without a public
// bucket URL.
type FileController struct {
	store objectOpener
}

func NewFileController(store objectOpener) *FileController {
	return &FileController{store: store}
}

func (f *FileController) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("filepath"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filepath"})
		return
	}

	reader, size, contentType, err := f.store.Open(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "object not found: " + key})
		return
	}
	defer reader.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, size, contentType, reader, nil)
}
