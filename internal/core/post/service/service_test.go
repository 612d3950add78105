package postapp

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"

	"plume/internal/core/domain"
	groupEntity "plume/internal/core/group"
	postEntity "plume/internal/core/post"
	userEntity "plume/internal/core/user"
	postPort "plume/internal/ports/post"
)

// A 1x1 PNG; mimetype detects it as image/png.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e,
	0x44, 0xae, 0x42, 0x60, 0x82,
}

type mockPostRepo struct {
	byID        map[uint]*postEntity.Post
	nextID      uint
	updateCalls int
	deleteCalls int
	createErr   error
	updateErr   error
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{byID: map[uint]*postEntity.Post{}}
}

func (m *mockPostRepo) Create(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	p.ID = m.nextID
	m.byID[p.ID] = p
	return p, nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id uint) (*postEntity.Post, error) {
	if p, ok := m.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockPostRepo) Update(ctx context.Context, p *postEntity.Post) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updateCalls++
	m.byID[p.ID] = p
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id uint) error {
	m.deleteCalls++
	delete(m.byID, id)
	return nil
}

func (m *mockPostRepo) Count(ctx context.Context, q postPort.FeedQuery) (int64, error) {
	return int64(len(m.byID)), nil
}

func (m *mockPostRepo) FindPage(ctx context.Context, q postPort.FeedQuery, offset, limit int) ([]*postEntity.Post, error) {
	return nil, nil
}

type mockGroupRepo struct{ bySlug map[string]*groupEntity.Group }

func (m *mockGroupRepo) Create(ctx context.Context, g *groupEntity.Group) (*groupEntity.Group, error) {
	m.bySlug[g.Slug] = g
	return g, nil
}

func (m *mockGroupRepo) FindBySlug(ctx context.Context, slug string) (*groupEntity.Group, error) {
	if g, ok := m.bySlug[slug]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

type mockImageStore struct {
	saved   []string
	removed []string
}

func (m *mockImageStore) Save(ctx context.Context, filename string, data []byte) (string, error) {
	m.saved = append(m.saved, filename)
	return "stored-" + filename, nil
}

func (m *mockImageStore) Remove(ctx context.Context, path string) error {
	m.removed = append(m.removed, path)
	return nil
}

func setup() (*PostService, *mockPostRepo, *mockGroupRepo, *mockImageStore, *userEntity.User) {
	repo := newMockPostRepo()
	groups := &mockGroupRepo{bySlug: map[string]*groupEntity.Group{
		"cats": {ID: 7, Title: "Cats", Slug: "cats"},
	}}
	images := &mockImageStore{}
	author := &userEntity.User{ID: uuid.Must(uuid.NewV4()), Username: "anna"}
	return NewPostService(repo, groups, images), repo, groups, images, author
}

func TestCreateRequiresText(t *testing.T) {
	svc, repo, _, _, author := setup()

	_, err := svc.Create(context.Background(), author.ID.String(), "   ", "", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, repo.byID)
}

func TestCreateUnknownGroup(t *testing.T) {
	svc, repo, _, _, author := setup()

	_, err := svc.Create(context.Background(), author.ID.String(), "hello", "dogs", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, repo.byID)
}

func TestCreateWithGroupAndImage(t *testing.T) {
	svc, repo, _, images, author := setup()

	dto, err := svc.Create(context.Background(), author.ID.String(), "hello", "cats",
		&ImageUpload{Filename: "cat.png", Data: pngBytes})
	assert.NoError(t, err)
	assert.Equal(t, "stored-cat.png", dto.Image)
	assert.Len(t, images.saved, 1)

	stored := repo.byID[dto.ID]
	assert.Equal(t, author.ID, stored.AuthorID)
	assert.NotNil(t, stored.GroupID)
	assert.Equal(t, uint(7), *stored.GroupID)
}

func TestCreateRejectsNonImageUpload(t *testing.T) {
	svc, repo, _, images, author := setup()

	_, err := svc.Create(context.Background(), author.ID.String(), "hello", "",
		&ImageUpload{Filename: "evil.html", Data: []byte("<html><body>hi</body></html>")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	// The whole submission fails: nothing stored, nothing written.
	assert.Empty(t, repo.byID)
	assert.Empty(t, images.saved)
}

func TestEditByNonAuthorForbidden(t *testing.T) {
	svc, repo, _, _, author := setup()
	ctx := context.Background()

	dto, err := svc.Create(ctx, author.ID.String(), "original", "", nil)
	assert.NoError(t, err)

	stranger := uuid.Must(uuid.NewV4()).String()
	_, err = svc.Edit(ctx, stranger, dto.ID, "hijacked", "", nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Unmodified.
	assert.Equal(t, 0, repo.updateCalls)
	assert.Equal(t, "original", repo.byID[dto.ID].Text)
}

func TestEditByAuthor(t *testing.T) {
	svc, repo, _, _, author := setup()
	ctx := context.Background()

	dto, err := svc.Create(ctx, author.ID.String(), "original", "", nil)
	assert.NoError(t, err)

	updated, err := svc.Edit(ctx, author.ID.String(), dto.ID, "revised", "cats", nil)
	assert.NoError(t, err)
	assert.Equal(t, "revised", updated.Text)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, uint(7), *repo.byID[dto.ID].GroupID)
}

func TestEditRejectsNonImageWithoutMutation(t *testing.T) {
	svc, repo, _, images, author := setup()
	ctx := context.Background()

	dto, err := svc.Create(ctx, author.ID.String(), "original", "", nil)
	assert.NoError(t, err)

	_, err = svc.Edit(ctx, author.ID.String(), dto.ID, "revised", "",
		&ImageUpload{Filename: "notes.txt", Data: []byte("just text, nothing else here")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, repo.updateCalls)
	assert.Equal(t, "original", repo.byID[dto.ID].Text)
	assert.Empty(t, images.saved)
}

func TestCreateFailureDropsStoredImage(t *testing.T) {
	svc, repo, _, images, author := setup()
	repo.createErr = errors.New("connection reset")

	_, err := svc.Create(context.Background(), author.ID.String(), "hello", "",
		&ImageUpload{Filename: "cat.png", Data: pngBytes})
	assert.Error(t, err)
	assert.Empty(t, repo.byID)
	// The image was written before the insert failed; it must not linger.
	assert.Equal(t, []string{"stored-cat.png"}, images.removed)
}

func TestEditFailureDropsNewImageKeepsOld(t *testing.T) {
	svc, repo, _, images, author := setup()
	ctx := context.Background()

	dto, err := svc.Create(ctx, author.ID.String(), "original", "",
		&ImageUpload{Filename: "old.png", Data: pngBytes})
	assert.NoError(t, err)

	repo.updateErr = errors.New("connection reset")
	_, err = svc.Edit(ctx, author.ID.String(), dto.ID, "revised", "",
		&ImageUpload{Filename: "new.png", Data: pngBytes})
	assert.Error(t, err)

	// Only the replacement is dropped; the row still references old.png.
	assert.Equal(t, []string{"stored-new.png"}, images.removed)
	assert.Equal(t, "stored-old.png", repo.byID[dto.ID].Image)
	assert.Equal(t, "original", repo.byID[dto.ID].Text)
}

func TestEditReplacesImageAndRemovesOld(t *testing.T) {
	svc, _, _, images, author := setup()
	ctx := context.Background()

	dto, err := svc.Create(ctx, author.ID.String(), "original", "",
		&ImageUpload{Filename: "old.png", Data: pngBytes})
	assert.NoError(t, err)

	updated, err := svc.Edit(ctx, author.ID.String(), dto.ID, "revised", "",
		&ImageUpload{Filename: "new.png", Data: pngBytes})
	assert.NoError(t, err)
	assert.Equal(t, "stored-new.png", updated.Image)
	assert.Equal(t, []string{"stored-old.png"}, images.removed)
}

func TestDeleteByNonAuthorForbidden(t *testing.T) {
	svc, repo, _, _, author := setup()
	ctx := context.Background()

	dto, err := svc.Create(ctx, author.ID.String(), "original", "", nil)
	assert.NoError(t, err)

	err = svc.Delete(ctx, uuid.Must(uuid.NewV4()).String(), dto.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, repo.deleteCalls)

	assert.NoError(t, svc.Delete(ctx, author.ID.String(), dto.ID))
	assert.Equal(t, 1, repo.deleteCalls)
}
