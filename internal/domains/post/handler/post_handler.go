package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogcms-backend/internal/domains/post/model"
	"blogcms-backend/internal/domains/post/service"
	"blogcms-backend/internal/shared/response"
	"blogcms-backend/pkg/logger"
)

type PostHandler struct {
	service service.ServiceInterface
}

func NewPostHandler(svc service.ServiceInterface) *PostHandler {
	return &PostHandler{service: svc}
}

// List handles GET /api/v1/posts?tag=X — the public feed, most recent
// first. Omitting tag returns all posts.
func (h *PostHandler) List(c *gin.Context) {
	tag := c.Query("tag")

	posts, err := h.service.List(c.Request.Context(), tag)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Posts fetched successfully", posts)
}

// Create handles POST /api/v1/posts (admin only).
func (h *PostHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Post created successfully", created)
}

// GetByID handles GET /api/v1/posts/:id.
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	post, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post fetched successfully", post)
}

// Update handles PUT /api/v1/posts/:id (admin only). The body is a
// partial set of fields; omitted fields keep their stored values.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post updated successfully", updated)
}

// Delete handles DELETE /api/v1/posts/:id (admin only).
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post deleted successfully", nil)
}

// ListTags handles GET /api/v1/tags — tag → occurrence count over
// every post.
func (h *PostHandler) ListTags(c *gin.Context) {
	counts, err := h.service.AggregateTags(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tags fetched successfully", counts)
}

// ResyncAuthor handles POST /api/v1/posts/:id/resync (admin only).
func (h *PostHandler) ResyncAuthor(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	post, err := h.service.ResyncAuthor(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Author name resynced", post)
}

func (h *PostHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable id can never match a stored post.
		response.Error(c, http.StatusNotFound, model.ErrPostNotFound.Error(), nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrInvalidAuthorID):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)

	case errors.Is(err, model.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)

	default:
		// Never leak the underlying store failure to the caller.
		logger.Error("post handler error", err)
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
