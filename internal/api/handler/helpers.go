package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// stagedFile is an uploaded file saved to local temp storage.
type stagedFile struct {
	Path        string
	ContentType string
	Ext         string
}

// stageUpload copies a multipart file to the temp dir under a random
// name. The caller removes it when done.
func stageUpload(c *gin.Context, file *multipart.FileHeader, tempDir string) (*stagedFile, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(tempDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	return &stagedFile{
		Path:        path,
		ContentType: file.Header.Get("Content-Type"),
		Ext:         ext,
	}, nil
}

// removeStaged best-effort deletes staged temp files.
func removeStaged(files ...*stagedFile) {
	for _, f := range files {
		if f != nil {
			_ = os.Remove(f.Path)
		}
	}
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func isMP4Type(contentType string) bool {
	return contentType == "video/mp4"
}
