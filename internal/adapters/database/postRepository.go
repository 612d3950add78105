package database

import (
	"context"

	"gorm.io/gorm"

	"plume/internal/config"
	"plume/internal/core/domain"
	"plume/internal/core/follow"
	"plume/internal/core/post"
	postPort "plume/internal/ports/post"
)

type PostRepositoryDatabase struct{}

func NewPostRepositoryDatabase() *PostRepositoryDatabase {
	return &PostRepositoryDatabase{}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := config.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uint) (*post.Post, error) {
	var p post.Post
	if err := config.DB.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&p, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	// Save with a zero GroupID must clear the association, so write the
	// mutable columns explicitly.
	return config.DB.WithContext(ctx).Model(&post.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"text":     p.Text,
			"group_id": p.GroupID,
			"image":    p.Image,
		}).Error
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uint) error {
	res := config.DB.WithContext(ctx).Delete(&post.Post{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (repo *PostRepositoryDatabase) Count(ctx context.Context, q postPort.FeedQuery) (int64, error) {
	var count int64
	if err := feedScope(config.DB.WithContext(ctx).Model(&post.Post{}), q).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *PostRepositoryDatabase) FindPage(ctx context.Context, q postPort.FeedQuery, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	if err := feedScope(config.DB.WithContext(ctx).Model(&post.Post{}), q).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// feedScope applies the feed filter. The following feed resolves to
// "authored by anyone the requester follows" via a subquery on the
// follow edges.
func feedScope(db *gorm.DB, q postPort.FeedQuery) *gorm.DB {
	switch {
	case q.GroupID != 0:
		return db.Where("group_id = ?", q.GroupID)
	case q.AuthorID != "":
		return db.Where("author_id = ?", q.AuthorID)
	case q.FollowedBy != "":
		return db.Where("author_id IN (?)",
			config.DB.Model(&follow.Follow{}).Select("author_id").Where("follower_id = ?", q.FollowedBy))
	default:
		return db
	}
}
