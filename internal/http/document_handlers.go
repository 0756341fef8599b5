package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quillcms/quill/internal/collection"
	"github.com/quillcms/quill/internal/documents"
	"github.com/quillcms/quill/internal/repo"
)

func (h *Handler) docError(g *gin.Context, c *collection.Collection, err error) {
	var ve *collection.ValidationError
	switch {
	case errors.Is(err, documents.ErrNotFound):
		g.JSON(http.StatusNotFound, gin.H{
			"error": h.Tr.T(g.GetString(localeKey), "error:notFound"),
		})
	case errors.As(err, &ve):
		g.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	default:
		h.Log.Error("document operation failed",
			zap.String("collection", c.Slug), zap.Error(err))
		g.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}

// ListDocuments godoc
// @Summary List a collection page
// @Tags documents
// @Produce json
// @Param limit query int false "page size"
// @Param page query int false "page number"
// @Param sort query string false "sort field, '-' prefix for descending"
// @Success 200 {object} documents.ListResult
// @Router /api/{collection} [get]
func (h *Handler) ListDocuments(c *collection.Collection) gin.HandlerFunc {
	return func(g *gin.Context) {
		p := repo.ListParams{Sort: g.Query("sort")}
		p.Limit, _ = strconv.ParseInt(g.DefaultQuery("limit", "10"), 10, 64)
		p.Page, _ = strconv.ParseInt(g.DefaultQuery("page", "1"), 10, 64)

		// where[field]=value query params become equality filters
		for key, vals := range g.Request.URL.Query() {
			if !strings.HasPrefix(key, "where[") || !strings.HasSuffix(key, "]") || len(vals) == 0 {
				continue
			}
			field := key[len("where[") : len(key)-1]
			f, ok := c.Field(field)
			if !ok {
				g.JSON(http.StatusBadRequest, gin.H{"error": "unknown filter field " + strconv.Quote(field)})
				return
			}
			if p.Where == nil {
				p.Where = map[string]any{}
			}
			if f.Type == collection.FieldCheckbox {
				p.Where[field] = vals[0] == "true"
			} else {
				p.Where[field] = vals[0]
			}
		}

		res, err := h.Docs.Find(g.Request.Context(), c, p)
		if err != nil {
			h.docError(g, c, err)
			return
		}
		g.JSON(http.StatusOK, res)
	}
}

// CreateDocument godoc
// @Summary Create a document
// @Tags documents
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/{collection} [post]
func (h *Handler) CreateDocument(c *collection.Collection) gin.HandlerFunc {
	return func(g *gin.Context) {
		var data map[string]any
		if err := g.ShouldBindJSON(&data); err != nil {
			g.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		doc, err := h.Docs.Create(g.Request.Context(), collection.ChangeArgs{
			Collection: c,
			Data:       data,
			Req:        h.reqContext(g),
		})
		if err != nil {
			h.docError(g, c, err)
			return
		}
		g.JSON(http.StatusCreated, gin.H{"doc": doc})
	}
}

func (h *Handler) GetDocument(c *collection.Collection) gin.HandlerFunc {
	return func(g *gin.Context) {
		doc, err := h.Docs.FindByID(g.Request.Context(), c, g.Param("id"))
		if err != nil {
			h.docError(g, c, err)
			return
		}
		g.JSON(http.StatusOK, gin.H{"doc": doc})
	}
}

func (h *Handler) UpdateDocument(c *collection.Collection) gin.HandlerFunc {
	return func(g *gin.Context) {
		var data map[string]any
		if err := g.ShouldBindJSON(&data); err != nil {
			g.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		doc, err := h.Docs.Update(g.Request.Context(), collection.ChangeArgs{
			Collection: c,
			Data:       data,
			Req:        h.reqContext(g),
		}, g.Param("id"))
		if err != nil {
			h.docError(g, c, err)
			return
		}
		g.JSON(http.StatusOK, gin.H{"doc": doc})
	}
}

func (h *Handler) DeleteDocument(c *collection.Collection) gin.HandlerFunc {
	return func(g *gin.Context) {
		doc, err := h.Docs.Delete(g.Request.Context(), c, h.reqContext(g), g.Param("id"))
		if err != nil {
			h.docError(g, c, err)
			return
		}
		g.JSON(http.StatusOK, gin.H{"doc": doc})
	}
}
