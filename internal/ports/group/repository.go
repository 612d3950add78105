package group

import (
	"context"

	"plume/internal/core/group"
)

type GroupRepository interface {
	Create(ctx context.Context, group *group.Group) (*group.Group, error)
	FindBySlug(ctx context.Context, slug string) (*group.Group, error)
}

type GroupDTO struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
