package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogcms-backend/internal/infrastructure/storage"
	"blogcms-backend/internal/shared/response"
	"blogcms-backend/pkg/logger"
)

// 10 MB upload cap
const maxUploadSize = 10 << 20

// UploadHandler forwards multipart uploads to object storage. Not part
// of the content core; the post's photo field just ends up holding the
// returned URL.
type UploadHandler struct {
	storage storage.ObjectStorage
}

func NewUploadHandler(st storage.ObjectStorage) *UploadHandler {
	return &UploadHandler{storage: st}
}

// Upload handles POST /api/v1/upload (admin only).
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file provided", nil)
		return
	}

	if fileHeader.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, "File too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("failed to open uploaded file", err)
		response.Error(c, http.StatusInternalServerError, "Failed to upload image", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("failed to read uploaded file", err)
		response.Error(c, http.StatusInternalServerError, "Failed to upload image", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := "blog/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)

	url, err := h.storage.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		logger.Error("failed to upload to object storage", err)
		response.Error(c, http.StatusInternalServerError, "Failed to upload image", nil)
		return
	}

	response.Success(c, http.StatusOK, "File uploaded successfully", gin.H{
		"url":          url,
		"key":          key,
		"size":         fileHeader.Size,
		"content_type": contentType,
	})
}
