package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asokatrip/models"
	"asokatrip/services/storage"
	"asokatrip/utils"
)

const maxUploadSize = 10 << 20

var allowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".svg":  true,
}

// StorageHandler uploads images for the admin editors.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// UploadFileHandler stores the multipart "file" under :folder and returns its public URL.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	folder := c.Param("folder")
	if !storage.Folders[folder] {
		respondError(c, "upload", storage.ErrUnknownFolder)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "file is required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, utils.ErrorResponse{Error: "file exceeds 10MB"})
		return
	}
	if !allowedImageTypes[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "only image files are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, "upload", err)
		return
	}
	defer file.Close()

	url, err := h.StorageSvc.UploadFile(c.Request.Context(), file, fileHeader.Filename, folder)
	if err != nil {
		respondError(c, "upload", err)
		return
	}
	getLogger(c).Info("File uploaded", zap.String("folder", folder), zap.String("url", url))
	c.JSON(http.StatusCreated, models.UploadResult{URL: url, Folder: folder})
}
