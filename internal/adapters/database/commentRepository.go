package database

import (
	"context"

	"plume/internal/config"
	"plume/internal/core/comment"
	"plume/internal/core/domain"
)

type CommentRepositoryDatabase struct{}

func NewCommentRepositoryDatabase() *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := config.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id uint) (*comment.Comment, error) {
	var c comment.Comment
	if err := config.DB.WithContext(ctx).
		Preload("Author").
		First(&c, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) FindRecentByPostID(ctx context.Context, postID uint, limit int) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := config.DB.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) Update(ctx context.Context, c *comment.Comment) error {
	return config.DB.WithContext(ctx).Model(&comment.Comment{}).
		Where("id = ?", c.ID).
		Update("text", c.Text).Error
}

func (repo *CommentRepositoryDatabase) Delete(ctx context.Context, id uint) error {
	res := config.DB.WithContext(ctx).Delete(&comment.Comment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
