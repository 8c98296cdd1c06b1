package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/internal/interface/middleware"
	"github.com/devlinkhq/devlink/pkg/response"
	"github.com/devlinkhq/devlink/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Text string `json:"text" binding:"required"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), uid, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, p, "post created", nil)
}

// List GET /api/posts — newest first.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, "posts", nil)
}

// Get GET /api/posts/:post_id
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p, "post", nil)
}

// Delete DELETE /api/posts/:post_id — author only.
func (h *PostHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("post_id"), uid); err != nil {
		fail(c, err)
		return
	}
	response.JSON[any](c, http.StatusOK, gin.H{"deleted": true}, "post deleted", nil)
}

// Like PUT /api/posts/like/:post_id
func (h *PostHandler) Like(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	likes, err := h.Svc.Like(c.Request.Context(), c.Param("post_id"), uid)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, likes, "post liked", nil)
}

// Unlike PUT /api/posts/unlike/:post_id
func (h *PostHandler) Unlike(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	likes, err := h.Svc.Unlike(c.Request.Context(), c.Param("post_id"), uid)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, likes, "post unliked", nil)
}

// AddComment POST /api/posts/comment/:post_id
func (h *PostHandler) AddComment(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	comments, err := h.Svc.AddComment(c.Request.Context(), c.Param("post_id"), uid, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, comments, "comment added", nil)
}

// RemoveComment DELETE /api/posts/comment/:post_id/:comment_id
func (h *PostHandler) RemoveComment(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	comments, err := h.Svc.RemoveComment(c.Request.Context(), c.Param("post_id"), c.Param("comment_id"), uid)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comments, "comment removed", nil)
}
