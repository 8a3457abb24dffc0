package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asokatrip/middleware"
	"asokatrip/models"
	"asokatrip/services/catalog"
)

// PackageHandler serves the trip package catalog.
type PackageHandler struct {
	Catalog catalog.CatalogService
}

func NewPackageHandler(svc catalog.CatalogService) *PackageHandler {
	return &PackageHandler{Catalog: svc}
}

// ListPackagesHandler returns every package, or only those with ?status=.
func (h *PackageHandler) ListPackagesHandler(c *gin.Context) {
	status := models.PackageStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		respondError(c, "list packages", catalog.ErrInvalidPackage)
		return
	}
	list, err := h.Catalog.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, "list packages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": list})
}

// PackageOptionsHandler lists the packages for the manual booking form.
func (h *PackageHandler) PackageOptionsHandler(c *gin.Context) {
	opts, err := h.Catalog.Options(c.Request.Context())
	if err != nil {
		respondError(c, "package options", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": opts})
}

func (h *PackageHandler) GetPackageHandler(c *gin.Context) {
	p, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "get package", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreatePackageHandler adds a package owned by the signed-in admin.
func (h *PackageHandler) CreatePackageHandler(c *gin.Context) {
	var in models.PackageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Catalog.Create(c.Request.Context(), in, adminUID(c))
	if err != nil {
		respondError(c, "create package", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PackageHandler) UpdatePackageHandler(c *gin.Context) {
	var in models.PackageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Catalog.Update(c.Request.Context(), c.Param("id"), in, adminUID(c))
	if err != nil {
		respondError(c, "update package", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// TogglePackageStatusHandler flips a package between active and draft.
func (h *PackageHandler) TogglePackageStatusHandler(c *gin.Context) {
	p, err := h.Catalog.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "toggle package", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PackageHandler) DeletePackageHandler(c *gin.Context) {
	if err := h.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "delete package", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PackageHandler) AddImagesHandler(c *gin.Context) {
	var req models.ImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Catalog.AddImages(c.Request.Context(), c.Param("id"), req.URLs)
	if err != nil {
		respondError(c, "add package images", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PackageHandler) RemoveImageHandler(c *gin.Context) {
	var req models.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Catalog.RemoveImage(c.Request.Context(), c.Param("id"), req.URL)
	if err != nil {
		respondError(c, "remove package image", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func adminUID(c *gin.Context) string {
	if admin, ok := middleware.CurrentAdmin(c); ok {
		return admin.UID
	}
	return ""
}
