package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"plume/internal/core/domain"
	postapp "plume/internal/core/post/service"
)

type PostController struct {
	pc PostUseCase
	cc CommentUseCase
}

func NewPostController(pc PostUseCase, cc CommentUseCase) *PostController {
	return &PostController{pc: pc, cc: cc}
}

// CreatePost accepts a multipart form: text (required), group (slug,
// optional), image (optional). A non-image upload rejects the whole
// submission; nothing is written.
func (ctl *PostController) CreatePost(c *gin.Context) {
	text := c.PostForm("text")
	groupSlug := c.PostForm("group")

	image, err := readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}

	res, err := ctl.pc.Create(c.Request.Context(), actorID(c), text, groupSlug, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// PostDetail serves one post with its recent comments. The username in
// the URL must match the post's author, as in the canonical URLs.
func (ctl *PostController) PostDetail(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := ctl.pc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if post.Author.Username != c.Param("username") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	comments, err := ctl.cc.Recent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "comments": comments})
}

// EditPost mutates a post. A non-author is redirected to the post's
// detail view; the post stays unmodified.
func (ctl *PostController) EditPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	text := c.PostForm("text")
	groupSlug := c.PostForm("group")

	image, err := readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}

	res, err := ctl.pc.Edit(c.Request.Context(), actorID(c), id, text, groupSlug, image)
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

func (ctl *PostController) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := ctl.pc.Delete(c.Request.Context(), actorID(c), id); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			c.Redirect(http.StatusFound, postDetailPath(c))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}

func postDetailPath(c *gin.Context) string {
	return "/profile/" + c.Param("username") + "/posts/" + c.Param("post_id")
}

// readImage pulls the optional image file out of the multipart form.
func readImage(c *gin.Context) (*postapp.ImageUpload, error) {
	header, err := c.FormFile("image")
	if err != nil {
		// No file attached.
		return nil, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &postapp.ImageUpload{Filename: header.Filename, Data: data}, nil
}
