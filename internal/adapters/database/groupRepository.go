package database

import (
	"context"

	"plume/internal/config"
	"plume/internal/core/group"
)

type GroupRepositoryDatabase struct{}

func NewGroupRepositoryDatabase() *GroupRepositoryDatabase {
	return &GroupRepositoryDatabase{}
}

func (repo *GroupRepositoryDatabase) Create(ctx context.Context, g *group.Group) (*group.Group, error) {
	if err := config.DB.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (repo *GroupRepositoryDatabase) FindBySlug(ctx context.Context, slug string) (*group.Group, error) {
	var g group.Group
	if err := config.DB.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &g, nil
}
