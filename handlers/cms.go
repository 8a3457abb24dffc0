package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"asokatrip/models"
)

// ContentSection is one editable list of site content. cms.Section satisfies it.
type ContentSection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc *T) (*T, error)
	Update(ctx context.Context, id string, doc *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// SectionHandler serves CRUD for one content section. Name is the JSON key of list responses.
type SectionHandler[T any] struct {
	Name    string
	Section ContentSection[T]
}

func NewSectionHandler[T any](name string, section ContentSection[T]) *SectionHandler[T] {
	return &SectionHandler[T]{Name: name, Section: section}
}

// Register mounts the section's routes on rg.
func (h *SectionHandler[T]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListHandler)
	rg.POST("", h.CreateHandler)
	rg.GET("/:id", h.GetHandler)
	rg.PUT("/:id", h.UpdateHandler)
	rg.DELETE("/:id", h.DeleteHandler)
}

func (h *SectionHandler[T]) ListHandler(c *gin.Context) {
	list, err := h.Section.List(c.Request.Context())
	if err != nil {
		respondError(c, "list "+h.Name, err)
		return
	}
	if list == nil {
		list = []T{}
	}
	c.JSON(http.StatusOK, gin.H{h.Name: list})
}

func (h *SectionHandler[T]) GetHandler(c *gin.Context) {
	doc, err := h.Section.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "get "+h.Name, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *SectionHandler[T]) CreateHandler(c *gin.Context) {
	doc := new(T)
	if err := c.ShouldBindJSON(doc); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.Section.Create(c.Request.Context(), doc)
	if err != nil {
		respondError(c, "create "+h.Name, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SectionHandler[T]) UpdateHandler(c *gin.Context) {
	doc := new(T)
	if err := c.ShouldBindJSON(doc); err != nil {
		bindError(c, err)
		return
	}
	updated, err := h.Section.Update(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		respondError(c, "update "+h.Name, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *SectionHandler[T]) DeleteHandler(c *gin.Context) {
	if err := h.Section.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "delete "+h.Name, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SiteSettings edits the landing page singleton and the gallery.
type SiteSettings interface {
	Landing(ctx context.Context) (*models.LandingPage, error)
	SaveLanding(ctx context.Context, in models.LandingPage) (*models.LandingPage, error)
	SaveFooter(ctx context.Context, in models.FooterSettings) error
	Gallery(ctx context.Context) ([]string, error)
	AddGalleryImages(ctx context.Context, urls []string) ([]string, error)
	RemoveGalleryImage(ctx context.Context, url string) ([]string, error)
}

// SettingsHandler serves the landing page, footer and gallery editors.
type SettingsHandler struct {
	Site SiteSettings
}

func NewSettingsHandler(site SiteSettings) *SettingsHandler {
	return &SettingsHandler{Site: site}
}

func (h *SettingsHandler) GetLandingHandler(c *gin.Context) {
	l, err := h.Site.Landing(c.Request.Context())
	if err != nil {
		respondError(c, "get landing", err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *SettingsHandler) SaveLandingHandler(c *gin.Context) {
	var in models.LandingPage
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	saved, err := h.Site.SaveLanding(c.Request.Context(), in)
	if err != nil {
		respondError(c, "save landing", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *SettingsHandler) SaveFooterHandler(c *gin.Context) {
	var in models.FooterSettings
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Site.SaveFooter(c.Request.Context(), in); err != nil {
		respondError(c, "save footer", err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (h *SettingsHandler) GetGalleryHandler(c *gin.Context) {
	images, err := h.Site.Gallery(c.Request.Context())
	if err != nil {
		respondError(c, "get gallery", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrls": images})
}

func (h *SettingsHandler) AddGalleryImagesHandler(c *gin.Context) {
	var req models.ImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	images, err := h.Site.AddGalleryImages(c.Request.Context(), req.URLs)
	if err != nil {
		respondError(c, "add gallery images", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrls": images})
}

func (h *SettingsHandler) RemoveGalleryImageHandler(c *gin.Context) {
	var req models.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	images, err := h.Site.RemoveGalleryImage(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, "remove gallery image", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrls": images})
}
