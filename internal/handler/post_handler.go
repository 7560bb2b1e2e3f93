package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campushub/internal/services"
	"campushub/internal/transport/httpdto"
	campus_errors "campushub/pkg/errors"
)

type PostHandler struct {
	service *services.PostService
}

func NewPostHandler(service *services.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req httpdto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	p, err := h.service.Create(c.Request.Context(), userID, services.CreatePostInput{
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writePostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(p))
}

func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		writePostError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{
		"posts": items,
		"total": total,
		"page":  page,
	}))
}

func (h *PostHandler) Get(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid post id", "INVALID_REQUEST"))
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), postID)
	if err != nil {
		writePostError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(p))
}

func (h *PostHandler) Update(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid post id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	p, err := h.service.Update(c.Request.Context(), userID, postID, services.UpdatePostInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		writePostError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(p))
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid post id", "INVALID_REQUEST"))
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, postID); err != nil {
		writePostError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "post deleted"}))
}

func writePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, campus_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("post not found", "NOT_FOUND"))
	case errors.Is(err, campus_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("not the post owner", "FORBIDDEN"))
	case errors.Is(err, campus_errors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid input", "INVALID_REQUEST"))
	case errors.Is(err, campus_errors.ErrStorage):
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse("storage unavailable", "STORAGE_ERROR"))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
	}
}
