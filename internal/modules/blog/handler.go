package blog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic/internal/middleware"
	"clinic/internal/pkg/response"
	"clinic/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the read routes. identify should attach the
// caller when a token is present so staff can see drafts.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, identify gin.HandlerFunc) {
	v1.GET("/blogs", identify, h.List)
	v1.GET("/blogs/:id", identify, h.Get)
}

// RegisterWriterRoutes mounts create and update for admin, editor and author.
func (h *Handler) RegisterWriterRoutes(writers *gin.RouterGroup) {
	writers.POST("/blogs", h.Create)
	writers.PUT("/blogs/:id", h.Update)
}

// RegisterEditorRoutes mounts delete for admin and editor.
func (h *Handler) RegisterEditorRoutes(editors *gin.RouterGroup) {
	editors.DELETE("/blogs/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.service.List(c.Request.Context(), middleware.Role(c), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blogs": items, "total": total})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.Get(c.Request.Context(), middleware.Role(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blog": b})
}

func (h *Handler) Create(c *gin.Context) {
	var req BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	b, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"blog": b})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	b, err := h.service.Update(c.Request.Context(), middleware.UserID(c), middleware.Role(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blog": b})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid blog ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Blog post not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only edit your own posts")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
