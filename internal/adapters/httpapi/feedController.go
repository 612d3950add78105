package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FeedController struct{ fc FeedUseCase }

func NewFeedController(fc FeedUseCase) *FeedController { return &FeedController{fc: fc} }

// Index serves the global feed. The page the client sees may be up to
// the cache TTL stale.
func (ctl *FeedController) Index(c *gin.Context) {
	page, err := ctl.fc.Global(c.Request.Context(), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (ctl *FeedController) GroupFeed(c *gin.Context) {
	group, page, err := ctl.fc.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group, "page": page})
}

func (ctl *FeedController) Profile(c *gin.Context) {
	author, following, page, err := ctl.fc.Profile(c.Request.Context(), c.Param("username"), actorID(c), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"author": author, "following": following, "page": page})
}

func (ctl *FeedController) FollowingFeed(c *gin.Context) {
	page, err := ctl.fc.Following(c.Request.Context(), actorID(c), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// ClearCache is the manual full clear; the only invalidation besides TTL
// expiry.
func (ctl *FeedController) ClearCache(c *gin.Context) {
	if err := ctl.fc.ClearCache(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
}
