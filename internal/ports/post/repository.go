package post

import (
	"context"

	"plume/internal/core/post"
	groupPort "plume/internal/ports/group"
	userPort "plume/internal/ports/user"
)

// FeedQuery selects which posts a feed shows. Zero value means the global
// feed; at most one of the fields is set by the services.
type FeedQuery struct {
	// GroupID restricts to posts of one group.
	GroupID uint
	// AuthorID restricts to posts of one author.
	AuthorID string
	// FollowedBy restricts to posts authored by anyone this user follows.
	FollowedBy string
}

type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id uint) (*post.Post, error)
	Update(ctx context.Context, post *post.Post) error
	Delete(ctx context.Context, id uint) error
	// Count and FindPage back the feed assembler. FindPage orders by
	// created_at descending, id descending.
	Count(ctx context.Context, q FeedQuery) (int64, error)
	FindPage(ctx context.Context, q FeedQuery, offset, limit int) ([]*post.Post, error)
}

type PostDTO struct {
	ID        uint                `json:"id"`
	Text      string              `json:"text"`
	Author    userPort.UserDTO    `json:"author"`
	Group     *groupPort.GroupDTO `json:"group,omitempty"`
	Image     string              `json:"image,omitempty"`
	CreatedAt string              `json:"created_at"`
}

// ToDTO maps a stored post (with author and group preloaded) onto the
// wire shape.
func ToDTO(p *post.Post) *PostDTO {
	dto := &PostDTO{
		ID:   p.ID,
		Text: p.Text,
		Author: userPort.UserDTO{
			ID:        p.AuthorID.String(),
			Username:  p.Author.Username,
			FirstName: p.Author.FirstName,
			LastName:  p.Author.LastName,
		},
		Image:     p.Image,
		CreatedAt: p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.Group != nil {
		dto.Group = &groupPort.GroupDTO{
			Title:       p.Group.Title,
			Slug:        p.Group.Slug,
			Description: p.Group.Description,
		}
	}
	return dto
}

// Page is one feed page: at most PageSize items plus the cursor bookkeeping
// the views render.
type Page struct {
	Items       []*PostDTO `json:"items"`
	Number      int        `json:"page_number"`
	TotalPages  int        `json:"total_pages"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
}
