package files

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(staff *gin.RouterGroup) {
	g := staff.Group("/files")
	{
		g.POST("", h.Upload)
		g.GET("", h.List)
		g.DELETE("/*path", h.Delete)
	}
}

func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFileSize+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file provided")
		return
	}

	obj, err := h.service.Upload(c.Request.Context(), c.PostForm("folder"), fileHeader)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"file": obj})
}

func (h *Handler) List(c *gin.Context) {
	objs, err := h.service.List(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"files": objs})
}

func (h *Handler) Delete(c *gin.Context) {
	key := c.Param("path")
	if err := h.service.Delete(c.Request.Context(), key); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"path": key})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidMimeType), errors.Is(err, ErrInvalidFolder):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
