package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"plume/internal/adapters/httpapi/middleware"
	postapp "plume/internal/core/post/service"
	commentPort "plume/internal/ports/comment"
	followPort "plume/internal/ports/follow"
	groupPort "plume/internal/ports/group"
	postPort "plume/internal/ports/post"
	userPort "plume/internal/ports/user"
)

// Inbound ports: what the controllers need from the services.

type UserUseCase interface {
	RegisterUser(ctx context.Context, firstName, lastName, username, email, password string) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
}

type PostUseCase interface {
	Create(ctx context.Context, authorID, text, groupSlug string, image *postapp.ImageUpload) (*postPort.PostDTO, error)
	Get(ctx context.Context, postID uint) (*postPort.PostDTO, error)
	Edit(ctx context.Context, actorID string, postID uint, text, groupSlug string, image *postapp.ImageUpload) (*postPort.PostDTO, error)
	Delete(ctx context.Context, actorID string, postID uint) error
}

type CommentUseCase interface {
	Add(ctx context.Context, actorID string, postID uint, text string) (*commentPort.CommentDTO, error)
	Recent(ctx context.Context, postID uint) ([]*commentPort.CommentDTO, error)
	Edit(ctx context.Context, actorID string, postID, commentID uint, text string) (*commentPort.CommentDTO, error)
	Delete(ctx context.Context, actorID string, postID, commentID uint) error
}

type FollowUseCase interface {
	Follow(ctx context.Context, followerID, authorUsername string) error
	Unfollow(ctx context.Context, followerID, authorUsername string) error
	Followers(ctx context.Context, authorID string) ([]*followPort.FollowDTO, error)
	Following(ctx context.Context, followerID string) ([]*followPort.FollowDTO, error)
}

type FeedUseCase interface {
	Global(ctx context.Context, pageToken string) (*postPort.Page, error)
	Group(ctx context.Context, slug, pageToken string) (*groupPort.GroupDTO, *postPort.Page, error)
	Profile(ctx context.Context, username, requesterID, pageToken string) (*userPort.UserDTO, bool, *postPort.Page, error)
	Following(ctx context.Context, requesterID, pageToken string) (*postPort.Page, error)
	ClearCache(ctx context.Context) error
}

// SetupRoutes wires controllers; use cases are injected from outside.
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
	followUC FollowUseCase,
	feedUC FeedUseCase,
) *gin.Engine {
	r := gin.Default()
	uc := NewUserController(userUC)
	pc := NewPostController(postUC, commentUC)
	cc := NewCommentController(commentUC)
	flc := NewFollowController(followUC)
	fc := NewFeedController(feedUC)

	r.POST("/auth/register", uc.RegisterUser)
	r.POST("/auth/login", uc.LoginUser)

	// Read-only feeds.
	r.GET("/", fc.Index)
	r.GET("/group/:slug", fc.GroupFeed)
	r.GET("/profile/:username", middleware.OptionalAuth(), fc.Profile)
	r.GET("/profile/:username/posts/:post_id", pc.PostDetail)
	r.GET("/follow", middleware.RequireAuth(), fc.FollowingFeed)

	// Mutations: all behind the auth redirect.
	auth := r.Group("/", middleware.RequireAuth())
	auth.POST("/posts", pc.CreatePost)
	auth.POST("/profile/:username/posts/:post_id/edit", pc.EditPost)
	auth.POST("/profile/:username/posts/:post_id/delete", pc.DeletePost)
	auth.POST("/profile/:username/posts/:post_id/comment", cc.AddComment)
	auth.POST("/profile/:username/posts/:post_id/comments/:comment_id/edit", cc.EditComment)
	auth.POST("/profile/:username/posts/:post_id/comments/:comment_id/delete", cc.DeleteComment)
	auth.POST("/profile/:username/follow", flc.Follow)
	auth.POST("/profile/:username/unfollow", flc.Unfollow)
	auth.GET("/followers", flc.Followers)
	auth.GET("/following", flc.Following)
	auth.POST("/cache/clear", fc.ClearCache)

	return r
}
