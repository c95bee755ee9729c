package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/internal/application"
	"github.com/oksasatya/thinkel-blog-api/pkg/response"
)

type PostHandler struct {
	Posts        *application.PostService
	Interactions *application.InteractionService
	Logger       *logrus.Logger
}

func NewPostHandler(posts *application.PostService, interactions *application.InteractionService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Posts: posts, Interactions: interactions, Logger: logger}
}

type listPostsQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Tag    string `form:"tag"`
	Author string `form:"author"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

func (q listPostsQuery) toInput() application.ListQuery {
	return application.ListQuery{Page: q.Page, Limit: q.Limit, Tag: q.Tag, Author: q.Author, Search: q.Search, Sort: q.Sort}
}

type createPostRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Tags        []string `json:"tags" binding:"omitempty,max=20"`
	Published   *bool    `json:"published"`
}

type updatePostRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Description *string   `json:"description"`
	Thumbnail   *string   `json:"thumbnail"`
	Tags        *[]string `json:"tags" binding:"omitempty,max=20"`
	Published   *bool     `json:"published"`
}

func writePage(c *gin.Context, p application.PostPage) {
	response.Success(c, http.StatusOK, p.Posts, "", response.WithPagination(response.Pagination{
		Page: p.Page, Limit: p.Limit, Total: p.Total, Pages: p.Pages,
	}))
}

func (h *PostHandler) listWith(c *gin.Context, run func(application.ListQuery) (application.PostPage, error)) {
	var q listPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	page, err := run(q.toInput())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	writePage(c, page)
}

// List GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	h.listWith(c, func(q application.ListQuery) (application.PostPage, error) {
		return h.Posts.List(c.Request.Context(), q)
	})
}

// ListMine GET /api/posts/my/all
func (h *PostHandler) ListMine(c *gin.Context) {
	h.listWith(c, func(q application.ListQuery) (application.PostPage, error) {
		return h.Posts.ListMine(c.Request.Context(), currentUserID(c), q)
	})
}

// ListBookmarked GET /api/posts/my/bookmarked
func (h *PostHandler) ListBookmarked(c *gin.Context) {
	h.listWith(c, func(q application.ListQuery) (application.PostPage, error) {
		return h.Posts.ListBookmarked(c.Request.Context(), currentUserID(c), q)
	})
}

// Stats GET /api/posts/my/stats
func (h *PostHandler) Stats(c *gin.Context) {
	st, err := h.Posts.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, "")
}

// GetBySlug GET /api/posts/slug/:slug counts a view.
func (h *PostHandler) GetBySlug(c *gin.Context) {
	p, err := h.Posts.ViewBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "")
}

// Get GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "")
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	p, err := h.Posts.Create(c.Request.Context(), currentUserID(c), application.CreatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
		Published:   req.Published,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "Post creado exitosamente")
}

// Update PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	p, err := h.Posts.Update(c.Request.Context(), currentUserID(c), c.Param("id"), application.UpdatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
		Published:   req.Published,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "Post actualizado exitosamente")
}

// Delete DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.Posts.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Post eliminado exitosamente")
}

// ToggleLike POST /api/posts/:id/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	res, err := h.Interactions.TogglePostLike(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, likeMessage(res.Liked))
}

// ToggleBookmark POST /api/posts/:id/bookmark
func (h *PostHandler) ToggleBookmark(c *gin.Context) {
	res, err := h.Interactions.TogglePostBookmark(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	msg := "Bookmark removido"
	if res.Bookmarked {
		msg = "Bookmark agregado"
	}
	response.Success(c, http.StatusOK, res, msg)
}

func likeMessage(liked bool) string {
	if liked {
		return "Like agregado"
	}
	return "Like removido"
}
