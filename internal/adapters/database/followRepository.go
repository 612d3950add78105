package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"plume/internal/config"
	"plume/internal/core/domain"
	"plume/internal/core/follow"
)

// FollowRepositoryDatabase implements FollowRepository on MySQL. The
// idx_follow_pair unique index resolves concurrent duplicate creates:
// the loser gets domain.ErrConflict, which the service treats as a no-op.
type FollowRepositoryDatabase struct{}

func NewFollowRepositoryDatabase() *FollowRepositoryDatabase {
	return &FollowRepositoryDatabase{}
}

func (repo *FollowRepositoryDatabase) Create(ctx context.Context, edge *follow.Follow) (*follow.Follow, error) {
	if err := config.DB.WithContext(ctx).Create(edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return edge, nil
}

func (repo *FollowRepositoryDatabase) Delete(ctx context.Context, followerID, authorID string) error {
	res := config.DB.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&follow.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (repo *FollowRepositoryDatabase) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	var count int64
	if err := config.DB.WithContext(ctx).Model(&follow.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowRepositoryDatabase) FollowersOf(ctx context.Context, authorID string) ([]*follow.Follow, error) {
	var edges []*follow.Follow
	if err := config.DB.WithContext(ctx).Where("author_id = ?", authorID).Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (repo *FollowRepositoryDatabase) FollowingOf(ctx context.Context, followerID string) ([]*follow.Follow, error) {
	var edges []*follow.Follow
	if err := config.DB.WithContext(ctx).Where("follower_id = ?", followerID).Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}
