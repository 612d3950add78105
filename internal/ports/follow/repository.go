package follow

import (
	"context"

	"plume/internal/core/follow"
)

type FollowRepository interface {
	// Create returns domain.ErrConflict when the (follower, author) pair
	// already exists; the store's unique index is the authority.
	Create(ctx context.Context, edge *follow.Follow) (*follow.Follow, error)
	// Delete returns domain.ErrNotFound when no such edge exists.
	Delete(ctx context.Context, followerID, authorID string) error
	IsFollowing(ctx context.Context, followerID, authorID string) (bool, error)
	FollowersOf(ctx context.Context, authorID string) ([]*follow.Follow, error)
	FollowingOf(ctx context.Context, followerID string) ([]*follow.Follow, error)
}

type FollowDTO struct {
	ID         string `json:"id"`
	FollowerID string `json:"follower_id"`
	AuthorID   string `json:"author_id"`
}
