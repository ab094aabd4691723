package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/infrastructure/storage"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/logger"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/response"
)

type FileHandler struct {
	storageClient *storage.CloudStorageClient
	maxFileSize   int64
}

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
		maxFileSize:   5 * 1024 * 1024,
	}
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadPhoto accepts a multipart image upload and returns the public URL.
// The URL is attached to a listing by a subsequent update call.
func (h *FileHandler) UploadPhoto(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxFileSize {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return response.Error(c, errors.BadRequest("File type not supported, expected an image", nil))
	}

	folder := "listing-photos"
	if c.FormValue("folder") == "avatars" {
		folder = "avatars"
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Could not read uploaded file", err))
	}
	defer src.Close()

	url, err := h.storageClient.UploadFile(c.Request().Context(), src, contentType, folder)
	if err != nil {
		logger.Error("Photo upload failed: %v", err)
		return response.Error(c, errors.Internal("Failed to store file", err))
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}
