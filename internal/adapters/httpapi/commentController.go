package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"plume/internal/core/domain"
)

type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController {
	return &CommentController{cc: cc}
}

// AddComment creates a comment under a post. Author and post come from
// the session and the URL; anything the client claims about either is
// ignored.
func (ctl *CommentController) AddComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	res, err := ctl.cc.Add(c.Request.Context(), actorID(c), id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *CommentController) EditComment(c *gin.Context) {
	pid, ok := postID(c)
	if !ok {
		return
	}
	id, ok := commentID(c)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	res, err := ctl.cc.Edit(c.Request.Context(), actorID(c), pid, id, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			c.Redirect(http.StatusFound, postDetailPath(c))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CommentController) DeleteComment(c *gin.Context) {
	pid, ok := postID(c)
	if !ok {
		return
	}
	id, ok := commentID(c)
	if !ok {
		return
	}
	if err := ctl.cc.Delete(c.Request.Context(), actorID(c), pid, id); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			c.Redirect(http.StatusFound, postDetailPath(c))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

func commentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}
