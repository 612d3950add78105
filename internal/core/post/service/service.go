package postapp

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofrs/uuid"

	"plume/internal/core/domain"
	"plume/internal/core/ownership"
	postEntity "plume/internal/core/post"
	groupPort "plume/internal/ports/group"
	"plume/internal/ports/imagestore"
	postPort "plume/internal/ports/post"
)

// ImageUpload is an optional attachment on post create/edit. Data is the
// full blob; validation happens before anything touches the store, so a
// rejected upload leaves no partial state.
type ImageUpload struct {
	Filename string
	Data     []byte
}

type PostService struct {
	PostRepository  postPort.PostRepository
	GroupRepository groupPort.GroupRepository
	Images          imagestore.ImageStore
}

func NewPostService(postRepo postPort.PostRepository, groupRepo groupPort.GroupRepository, images imagestore.ImageStore) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		GroupRepository: groupRepo,
		Images:          images,
	}
}

// Create validates text, group and image, then writes the post. The
// author is stamped from the authenticated actor, never from input.
func (s *PostService) Create(ctx context.Context, authorID, text, groupSlug string, image *ImageUpload) (*postPort.PostDTO, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}

	p := &postEntity.Post{
		Text:     text,
		GroupID:  groupID,
		AuthorID: uuid.FromStringOrNil(authorID),
		Image:    imagePath,
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		// The row never landed; the stored image would be an orphan.
		if imagePath != "" {
			_ = s.Images.Remove(ctx, imagePath)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.get(ctx, created.ID)
}

// Edit mutates a post after the ownership check. The owner is re-read
// from the store, never taken from the request.
func (s *PostService) Edit(ctx context.Context, actorID string, postID uint, text, groupSlug string, image *ImageUpload) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(actorID, p.AuthorID.String()); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	oldImage := p.Image
	imagePath := p.Image
	if image != nil {
		imagePath, err = s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
	}

	p.Text = text
	p.GroupID = groupID
	p.Image = imagePath
	if err := s.PostRepository.Update(ctx, p); err != nil {
		// The row still references the old image; drop the new one.
		if image != nil {
			_ = s.Images.Remove(ctx, imagePath)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	// The old image is unreferenced only once the row points elsewhere.
	if image != nil && oldImage != "" {
		if err := s.Images.Remove(ctx, oldImage); err != nil {
			return nil, fmt.Errorf("replace image: %w", err)
		}
	}

	return s.get(ctx, p.ID)
}

func (s *PostService) Delete(ctx context.Context, actorID string, postID uint) error {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := ownership.Authorize(actorID, p.AuthorID.String()); err != nil {
		return err
	}
	if err := s.PostRepository.Delete(ctx, postID); err != nil {
		return err
	}
	if p.Image != "" {
		return s.Images.Remove(ctx, p.Image)
	}
	return nil
}

func (s *PostService) Get(ctx context.Context, postID uint) (*postPort.PostDTO, error) {
	return s.get(ctx, postID)
}

func (s *PostService) get(ctx context.Context, postID uint) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(p), nil
}

func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve group: %w", err)
	}
	return &g.ID, nil
}

// storeImage sniffs the blob and rejects anything that is not an image,
// before any write happens.
func (s *PostService) storeImage(ctx context.Context, image *ImageUpload) (string, error) {
	if image == nil {
		return "", nil
	}
	mt := mimetype.Detect(image.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %q is not an image", domain.ErrValidation, mt.String())
	}
	path, err := s.Images.Save(ctx, image.Filename, image.Data)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return path, nil
}
