package comment

import (
	"context"

	"plume/internal/core/comment"
	userPort "plume/internal/ports/user"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, id uint) (*comment.Comment, error)
	// FindRecentByPostID returns the newest comments first, capped at limit.
	FindRecentByPostID(ctx context.Context, postID uint, limit int) ([]*comment.Comment, error)
	Update(ctx context.Context, comment *comment.Comment) error
	Delete(ctx context.Context, id uint) error
}

type CommentDTO struct {
	ID        uint             `json:"id"`
	PostID    uint             `json:"post_id"`
	Author    userPort.UserDTO `json:"author"`
	Text      string           `json:"text"`
	CreatedAt string           `json:"created_at"`
}
