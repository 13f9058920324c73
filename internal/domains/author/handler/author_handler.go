package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogcms-backend/internal/domains/author/model"
	"blogcms-backend/internal/domains/author/service"
	"blogcms-backend/internal/shared/response"
	"blogcms-backend/pkg/logger"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// Create handles POST /api/v1/authors (admin only).
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Author created successfully", created.ToResponse())
}

// List handles GET /api/v1/authors.
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Always a JSON array, even when empty.
	out := make([]*model.AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, authors[i].ToResponse())
	}

	response.Success(c, http.StatusOK, "Authors fetched successfully", out)
}

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrMissingFields):
		response.Error(c, http.StatusBadRequest, "name, profession and link are required", nil)
	case errors.Is(err, model.ErrAuthorNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	default:
		logger.Error("author handler error", err)
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
