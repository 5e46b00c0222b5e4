package notification

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic/internal/domain"
	"clinic/internal/middleware"
	jwtsvc "clinic/internal/pkg/jwt"
	"clinic/internal/pkg/response"
	"clinic/internal/repository"
)

type tokenValidator interface {
	ValidateToken(tokenStr string) (*jwtsvc.Claims, error)
}

type Handler struct {
	service *Service
	hub     *Hub
	tokens  tokenValidator
}

func NewHandler(service *Service, hub *Hub, tokens tokenValidator) *Handler {
	return &Handler{service: service, hub: hub, tokens: tokens}
}

// RegisterRoutes mounts the staff routes. staff must already require a
// staff role; admin adds the admin check for destructive routes.
func (h *Handler) RegisterRoutes(staff *gin.RouterGroup, admin gin.HandlerFunc) {
	g := staff.Group("/notifications")
	{
		g.GET("", h.List)
		g.GET("/unread-count", h.UnreadCount)
		g.PATCH("/:id/read", h.MarkRead)
		g.POST("/read-all", h.MarkAllRead)
		g.DELETE("/:id", admin, h.Delete)
		g.DELETE("", admin, h.DeleteMany)
	}
}

// RegisterWSRoute mounts the websocket endpoint. Browsers cannot set headers
// on a websocket handshake, so the token may also come as ?token=.
func (h *Handler) RegisterWSRoute(v1 *gin.RouterGroup) {
	v1.GET("/notifications/ws", h.ServeWS)
}

func (h *Handler) List(c *gin.Context) {
	limit := 50
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = min(v, 200)
		}
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	unreadOnly := c.Query("unread") == "true"

	role := middleware.Role(c)
	list, err := h.service.List(c.Request.Context(), role, unreadOnly, repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		h.writeError(c, err)
		return
	}
	unread, err := h.service.UnreadCount(c.Request.Context(), role)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  unread,
	})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	n, err := h.service.UnreadCount(c.Request.Context(), middleware.Role(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread_count": n})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.MarkRead(c.Request.Context(), middleware.Role(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "read": true})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	res, err := h.service.MarkAllRead(c.Request.Context(), middleware.Role(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
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

// DeleteMany accepts ?read=true|false, ?ref=<ref> or ?all=true.
func (h *Handler) DeleteMany(c *gin.Context) {
	var f repository.NotificationDeleteFilter
	if s := c.Query("read"); s != "" {
		read, err := strconv.ParseBool(s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "read must be true or false")
			return
		}
		f.Read = &read
	}
	if s := c.Query("ref"); s != "" {
		ref := domain.NotificationRef(s)
		switch ref {
		case domain.RefBooking, domain.RefBlog, domain.RefMessage, domain.RefOffer:
		default:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown notification ref")
			return
		}
		f.Ref = ref
	}
	f.All = c.Query("all") == "true"

	n, err := h.service.DeleteMany(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n})
}

func (h *Handler) ServeWS(c *gin.Context) {
	tokenStr := c.Query("token")
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		tokenStr = strings.TrimPrefix(auth, "Bearer ")
	}
	if tokenStr == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing token")
		return
	}
	claims, err := h.tokens.ValidateToken(tokenStr)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}
	role := domain.UserRole(claims.Role)
	if !role.IsStaff() {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		return
	}
	h.hub.Serve(conn, role)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid notification ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
	case errors.Is(err, ErrEmptyFilter):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Specify read, ref or all=true")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
