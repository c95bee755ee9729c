package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/internal/application"
	"github.com/oksasatya/thinkel-blog-api/pkg/response"
)

type CommentHandler struct {
	Comments     *application.CommentService
	Interactions *application.InteractionService
	Logger       *logrus.Logger
}

func NewCommentHandler(comments *application.CommentService, interactions *application.InteractionService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Comments: comments, Interactions: interactions, Logger: logger}
}

type createCommentRequest struct {
	PostID   string `json:"postId"`
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// Create POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	cm, err := h.Comments.Create(c.Request.Context(), currentUserID(c), application.CreateCommentInput{
		PostID: req.PostID, Content: req.Content, ParentID: req.ParentID,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, cm, "Comentario creado exitosamente")
}

// ListForPost GET /api/comments/post/:postId and GET /api/posts/:id/comments.
// total counts top level comments.
func (h *CommentHandler) ListForPost(c *gin.Context) {
	postID := c.Param("postId")
	if postID == "" {
		postID = c.Param("id")
	}
	threads, err := h.Comments.ListForPost(c.Request.Context(), postID, c.Query("sort"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, threads, "", response.WithTotal(int64(len(threads))))
}

// Update PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	cm, err := h.Comments.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cm, "Comentario actualizado")
}

// Delete DELETE /api/comments/:id removes the comment and its replies.
func (h *CommentHandler) Delete(c *gin.Context) {
	removed, err := h.Comments.Delete(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Comentario eliminado", response.WithMeta(gin.H{"removed": removed}))
}

// ToggleLike POST /api/comments/:id/like
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	res, err := h.Interactions.ToggleCommentLike(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, likeMessage(res.Liked))
}
