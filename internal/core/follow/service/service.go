package followapp

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"

	"plume/internal/core/domain"
	followEntity "plume/internal/core/follow"
	followPort "plume/internal/ports/follow"
	userPort "plume/internal/ports/user"
)

// FollowService maintains the follow relation. Following is idempotent:
// an existing edge, including one created by a concurrent request, is a
// successful no-op. Self-follow is rejected here as policy; the store
// does not enforce it.
type FollowService struct {
	FollowRepository followPort.FollowRepository
	UserRepository   userPort.UserRepository
}

func NewFollowService(followRepo followPort.FollowRepository, userRepo userPort.UserRepository) *FollowService {
	return &FollowService{
		FollowRepository: followRepo,
		UserRepository:   userRepo,
	}
}

func (s *FollowService) Follow(ctx context.Context, followerID, authorUsername string) error {
	author, err := s.UserRepository.FindByUsername(ctx, authorUsername)
	if err != nil {
		return fmt.Errorf("resolve author: %w", err)
	}
	if author.ID.String() == followerID {
		return fmt.Errorf("%w: cannot follow yourself", domain.ErrValidation)
	}

	edge := &followEntity.Follow{
		ID:         uuid.Must(uuid.NewV4()),
		FollowerID: uuid.FromStringOrNil(followerID),
		AuthorID:   author.ID,
	}

	_, err = s.FollowRepository.Create(ctx, edge)
	if errors.Is(err, domain.ErrConflict) {
		// Edge already exists; the unique pair index is the authority.
		return nil
	}
	return err
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, authorUsername string) error {
	author, err := s.UserRepository.FindByUsername(ctx, authorUsername)
	if err != nil {
		return fmt.Errorf("resolve author: %w", err)
	}
	return s.FollowRepository.Delete(ctx, followerID, author.ID.String())
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	if followerID == "" {
		return false, nil
	}
	return s.FollowRepository.IsFollowing(ctx, followerID, authorID)
}

func (s *FollowService) Followers(ctx context.Context, authorID string) ([]*followPort.FollowDTO, error) {
	edges, err := s.FollowRepository.FollowersOf(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return toDTOs(edges), nil
}

func (s *FollowService) Following(ctx context.Context, followerID string) ([]*followPort.FollowDTO, error) {
	edges, err := s.FollowRepository.FollowingOf(ctx, followerID)
	if err != nil {
		return nil, err
	}
	return toDTOs(edges), nil
}

func toDTOs(edges []*followEntity.Follow) []*followPort.FollowDTO {
	dtos := make([]*followPort.FollowDTO, 0, len(edges))
	for _, e := range edges {
		dtos = append(dtos, &followPort.FollowDTO{
			ID:         e.ID.String(),
			FollowerID: e.FollowerID.String(),
			AuthorID:   e.AuthorID.String(),
		})
	}
	return dtos
}
