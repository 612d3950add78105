package commentapp

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"

	commentEntity "plume/internal/core/comment"
	"plume/internal/core/domain"
	"plume/internal/core/ownership"
	commentPort "plume/internal/ports/comment"
	postPort "plume/internal/ports/post"
	userPort "plume/internal/ports/user"
)

// RecentLimit caps the comment listing under a post. This is a "recent
// comments" truncation, not pagination.
const RecentLimit = 10

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
	}
}

// Add creates a comment under an existing post. Author and post are
// stamped server-side; client-submitted values for either are ignored.
func (s *CommentService) Add(ctx context.Context, actorID string, postID uint, text string) (*commentPort.CommentDTO, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("resolve post: %w", err)
	}

	c := &commentEntity.Comment{
		PostID:   postID,
		AuthorID: uuid.FromStringOrNil(actorID),
		Text:     text,
	}
	created, err := s.CommentRepository.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// Re-read for the preloaded author.
	stored, err := s.CommentRepository.FindByID(ctx, created.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(stored), nil
}

// Recent returns the newest comments of a post, capped at RecentLimit.
func (s *CommentService) Recent(ctx context.Context, postID uint) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.FindRecentByPostID(ctx, postID, RecentLimit)
	if err != nil {
		return nil, err
	}
	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, toDTO(c))
	}
	return dtos, nil
}

// Edit mutates a comment addressed through its post: a comment that does
// not belong to postID reads as missing, before the ownership check.
func (s *CommentService) Edit(ctx context.Context, actorID string, postID, commentID uint, text string) (*commentPort.CommentDTO, error) {
	c, err := s.CommentRepository.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.PostID != postID {
		return nil, domain.ErrNotFound
	}
	if err := ownership.Authorize(actorID, c.AuthorID.String()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	c.Text = text
	if err := s.CommentRepository.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return toDTO(c), nil
}

func (s *CommentService) Delete(ctx context.Context, actorID string, postID, commentID uint) error {
	c, err := s.CommentRepository.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.PostID != postID {
		return domain.ErrNotFound
	}
	if err := ownership.Authorize(actorID, c.AuthorID.String()); err != nil {
		return err
	}
	return s.CommentRepository.Delete(ctx, commentID)
}

func toDTO(c *commentEntity.Comment) *commentPort.CommentDTO {
	return &commentPort.CommentDTO{
		ID:     c.ID,
		PostID: c.PostID,
		Author: userPort.UserDTO{
			ID:        c.AuthorID.String(),
			Username:  c.Author.Username,
			FirstName: c.Author.FirstName,
			LastName:  c.Author.LastName,
		},
		Text:      c.Text,
		CreatedAt: c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
