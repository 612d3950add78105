package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"plume/internal/core/domain"
)

type FollowController struct{ fc FollowUseCase }

func NewFollowController(fc FollowUseCase) *FollowController {
	return &FollowController{fc: fc}
}

// Follow creates the edge and redirects back to the author's profile.
// Following an already-followed author is a no-op, so the redirect
// happens either way.
func (ctl *FollowController) Follow(c *gin.Context) {
	username := c.Param("username")
	if err := ctl.fc.Follow(c.Request.Context(), actorID(c), username); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			// Self-follow: policy violation, back to the profile.
			c.Redirect(http.StatusFound, "/profile/"+username)
			return
		}
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username)
}

func (ctl *FollowController) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := ctl.fc.Unfollow(c.Request.Context(), actorID(c), username); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username)
}

func (ctl *FollowController) Followers(c *gin.Context) {
	followers, err := ctl.fc.Followers(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, followers)
}

func (ctl *FollowController) Following(c *gin.Context) {
	following, err := ctl.fc.Following(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, following)
}
