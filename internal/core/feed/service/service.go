package feedapp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	feedcachePort "plume/internal/ports/feedcache"
	followPort "plume/internal/ports/follow"
	groupPort "plume/internal/ports/group"
	postPort "plume/internal/ports/post"
	userPort "plume/internal/ports/user"
)

const (
	// PageSize is fixed for every feed view.
	PageSize = 10

	// CacheTTL bounds how stale the cached global feed may be. There is
	// no invalidation on write: a fresh post can stay invisible on the
	// global feed for up to this window.
	CacheTTL = 20 * time.Second
)

// FeedService assembles ordered, paginated post listings: global,
// per-group, per-author and following. Only the global feed goes through
// the cache.
type FeedService struct {
	PostRepository   postPort.PostRepository
	GroupRepository  groupPort.GroupRepository
	UserRepository   userPort.UserRepository
	FollowRepository followPort.FollowRepository
	Cache            feedcachePort.Cache
	Logger           *zap.Logger
}

func NewFeedService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	followRepo followPort.FollowRepository,
	cache feedcachePort.Cache,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		PostRepository:   postRepo,
		GroupRepository:  groupRepo,
		UserRepository:   userRepo,
		FollowRepository: followRepo,
		Cache:            cache,
		Logger:           logger,
	}
}

// Global returns the global feed page. The rendered page is cached keyed
// by the raw page token for CacheTTL; cache errors fall through to a
// fresh computation.
func (s *FeedService) Global(ctx context.Context, pageToken string) (*postPort.Page, error) {
	key := "feed:index?page=" + pageToken

	if raw, ok, err := s.Cache.Get(ctx, key); err == nil && ok {
		var page postPort.Page
		if err := json.Unmarshal(raw, &page); err == nil {
			return &page, nil
		}
	} else if err != nil {
		s.Logger.Warn("feed cache read failed", zap.Error(err))
	}

	page, err := s.assemble(ctx, postPort.FeedQuery{}, pageToken)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(page); err == nil {
		if err := s.Cache.Set(ctx, key, raw, CacheTTL); err != nil {
			s.Logger.Warn("feed cache write failed", zap.Error(err))
		}
	}
	return page, nil
}

// Group returns the group and its feed page; unknown slug is NotFound.
func (s *FeedService) Group(ctx context.Context, slug, pageToken string) (*groupPort.GroupDTO, *postPort.Page, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve group: %w", err)
	}

	page, err := s.assemble(ctx, postPort.FeedQuery{GroupID: g.ID}, pageToken)
	if err != nil {
		return nil, nil, err
	}
	dto := &groupPort.GroupDTO{Title: g.Title, Slug: g.Slug, Description: g.Description}
	return dto, page, nil
}

// Profile returns the author, whether requester follows them (always
// false for anonymous requesters), and the author's feed page.
func (s *FeedService) Profile(ctx context.Context, username, requesterID, pageToken string) (*userPort.UserDTO, bool, *postPort.Page, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, nil, fmt.Errorf("resolve author: %w", err)
	}

	following := false
	if requesterID != "" {
		following, err = s.FollowRepository.IsFollowing(ctx, requesterID, author.ID.String())
		if err != nil {
			return nil, false, nil, err
		}
	}

	page, err := s.assemble(ctx, postPort.FeedQuery{AuthorID: author.ID.String()}, pageToken)
	if err != nil {
		return nil, false, nil, err
	}
	dto := &userPort.UserDTO{
		ID:        author.ID.String(),
		Username:  author.Username,
		FirstName: author.FirstName,
		LastName:  author.LastName,
	}
	return dto, following, page, nil
}

// Following returns posts authored by anyone the requester follows. The
// caller guarantees an authenticated requester.
func (s *FeedService) Following(ctx context.Context, requesterID, pageToken string) (*postPort.Page, error) {
	return s.assemble(ctx, postPort.FeedQuery{FollowedBy: requesterID}, pageToken)
}

// ClearCache drops every cached feed page. The only way besides TTL
// expiry for a cached page to go away.
func (s *FeedService) ClearCache(ctx context.Context) error {
	return s.Cache.Clear(ctx)
}

// assemble resolves the page token against the filtered post count and
// fetches one page. It never fails on a bad token: non-integers resolve
// to page 1 and out-of-range integers clamp to the last page.
func (s *FeedService) assemble(ctx context.Context, q postPort.FeedQuery, pageToken string) (*postPort.Page, error) {
	count, err := s.PostRepository.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	totalPages := int((count + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	number := resolvePageNumber(pageToken, totalPages)

	posts, err := s.PostRepository.FindPage(ctx, q, (number-1)*PageSize, PageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	items := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, postPort.ToDTO(p))
	}

	return &postPort.Page{
		Items:       items,
		Number:      number,
		TotalPages:  totalPages,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}, nil
}

func resolvePageNumber(token string, totalPages int) int {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 1
	}
	if n < 1 || n > totalPages {
		return totalPages
	}
	return n
}
