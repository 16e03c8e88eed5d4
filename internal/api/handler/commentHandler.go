package handler

import (
	"errors"
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment routes nested under a title's review.
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/titles/:title_id/reviews/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.GetByID)
		comments.POST("", h.Create)
		comments.PATCH("/:comment_id", h.Update)
		comments.DELETE("/:comment_id", h.Delete)
	}
}

// parsePath pulls the full nested path out of the request.
func (h *CommentHandler) parsePath(c *gin.Context, withComment bool) (titleID, reviewID, commentID int64, ok bool) {
	if titleID, ok = parseIDParam(c, "title_id"); !ok {
		return
	}
	if reviewID, ok = parseIDParam(c, "review_id"); !ok {
		return
	}
	if withComment {
		commentID, ok = parseIDParam(c, "comment_id")
	}
	return
}

// List returns comments on a review, oldest first
// GET /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, _, ok := h.parsePath(c, false)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	comments, total, err := h.commentService.List(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		h.respondError(c, err, "failed to fetch comments")
		return
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, *dto.FromModelToCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(items, total, page, pageSize))
}

// GetByID returns a single comment
// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) GetByID(c *gin.Context) {
	titleID, reviewID, commentID, ok := h.parsePath(c, true)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.respondError(c, err, "failed to fetch comment")
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

// Create posts a comment on a review
// POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, _, ok := h.parsePath(c, false)
	if !ok {
		return
	}

	principal := middleware.CurrentUser(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), principal, titleID, reviewID, req.Text)
	if err != nil {
		h.respondError(c, err, "failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment))
}

// Update edits a comment; only the author or a manager may
// PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, commentID, ok := h.parsePath(c, true)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.respondError(c, err, "failed to fetch comment")
		return
	}

	principal := middleware.CurrentUser(c)
	if !permissions.AuthorOrManager(principal, middleware.ActionForMethod(c.Request.Method), authorIDOf(comment.AuthorID)) {
		denyRequest(c, principal)
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.commentService.Update(c.Request.Context(), titleID, reviewID, commentID, req.Text)
	if err != nil {
		h.respondError(c, err, "failed to update comment")
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(updated))
}

// Delete removes a comment; only the author or a manager may
// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, commentID, ok := h.parsePath(c, true)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.respondError(c, err, "failed to fetch comment")
		return
	}

	principal := middleware.CurrentUser(c)
	if !permissions.AuthorOrManager(principal, middleware.ActionForMethod(c.Request.Method), authorIDOf(comment.AuthorID)) {
		denyRequest(c, principal)
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), titleID, reviewID, commentID); err != nil {
		h.respondError(c, err, "failed to delete comment")
		return
	}

	c.Status(http.StatusNoContent)
}

// authorIDOf flattens the nullable author link; an orphaned comment has no
// author, so only managers pass the author check for it.
func authorIDOf(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

func (h *CommentHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
