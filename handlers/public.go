package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"asokatrip/models"
)

// PublicContent is the read side of the site content shown to visitors.
type PublicContent interface {
	PublicLanding(ctx context.Context) (*models.PublicLanding, error)
	PublishedPosts(ctx context.Context, limit int) ([]models.BlogPost, error)
	PublishedPost(ctx context.Context, slugOrID string) (*models.BlogPost, error)
	Gallery(ctx context.Context) ([]string, error)
}

// PublicCatalog is the read side of the package catalog shown to visitors.
type PublicCatalog interface {
	ListPublic(ctx context.Context, limit int) ([]models.TripPackage, error)
	GetPublic(ctx context.Context, slugOrID string) (*models.TripPackage, error)
}

// PublicHandler serves the unauthenticated website API.
type PublicHandler struct {
	Content      PublicContent
	Catalog      PublicCatalog
	Destinations ContentSection[models.Destination]
}

func NewPublicHandler(content PublicContent, catalog PublicCatalog, destinations ContentSection[models.Destination]) *PublicHandler {
	return &PublicHandler{Content: content, Catalog: catalog, Destinations: destinations}
}

// LandingHandler returns every home page section in one response.
func (h *PublicHandler) LandingHandler(c *gin.Context) {
	l, err := h.Content.PublicLanding(c.Request.Context())
	if err != nil {
		respondError(c, "public landing", err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *PublicHandler) PackagesHandler(c *gin.Context) {
	list, err := h.Catalog.ListPublic(c.Request.Context(), queryLimit(c))
	if err != nil {
		respondError(c, "public packages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": list})
}

// PackageHandler looks a package up by slug, then by id. Drafts are not found.
func (h *PublicHandler) PackageHandler(c *gin.Context) {
	p, err := h.Catalog.GetPublic(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, "public package", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PublicHandler) PostsHandler(c *gin.Context) {
	posts, err := h.Content.PublishedPosts(c.Request.Context(), queryLimit(c))
	if err != nil {
		respondError(c, "public posts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PublicHandler) PostHandler(c *gin.Context) {
	post, err := h.Content.PublishedPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, "public post", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PublicHandler) GalleryHandler(c *gin.Context) {
	images, err := h.Content.Gallery(c.Request.Context())
	if err != nil {
		respondError(c, "public gallery", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrls": images})
}

func (h *PublicHandler) DestinationsHandler(c *gin.Context) {
	list, err := h.Destinations.List(c.Request.Context())
	if err != nil {
		respondError(c, "public destinations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": list})
}

// queryLimit reads ?limit=, treating a missing or invalid value as no limit.
func queryLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
