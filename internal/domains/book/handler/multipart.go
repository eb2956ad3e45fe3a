package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/book"
)

// extractCover pulls an uploaded cover image out of the multipart form.
// The file may arrive under any field name; the first one wins. A request
// without a file (or a non-multipart request) yields nil without error.
func (h *BookHandler) extractCover(c *gin.Context) (*book.CoverUpload, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	var header *multipart.FileHeader
	for _, headers := range form.File {
		if len(headers) > 0 {
			header = headers[0]
			break
		}
	}
	if header == nil {
		return nil, nil
	}

	if header.Size > h.maxFileSize {
		return nil, book.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, book.ErrFileUpload
	}
	defer file.Close()

	// LimitReader backstops clients that lie about Size in the part header.
	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return nil, book.ErrFileUpload
	}
	if int64(len(data)) > h.maxFileSize {
		return nil, book.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &book.CoverUpload{
		Data:        data,
		ContentType: contentType,
		Ext:         strings.ToLower(filepath.Ext(header.Filename)),
	}, nil
}
