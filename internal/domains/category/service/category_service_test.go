package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/category"
	"library-catalog/internal/shared"
)

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*category.Category
	byName     map[string]uuid.UUID
	deleted    []uuid.UUID
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[uuid.UUID]*category.Category),
		byName:     make(map[string]uuid.UUID),
	}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	if _, taken := r.byName[c.Name]; taken {
		return nil, category.ErrDuplicateName
	}
	stored := *c
	stored.ID = uuid.New()
	stored.Books = []uuid.UUID{}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.categories[stored.ID] = &stored
	r.byName[stored.Name] = stored.ID
	return &stored, nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) GetAll(ctx context.Context) ([]category.Category, error) {
	out := make([]category.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) (*category.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	if existing, taken := r.byName[name]; taken && existing != id {
		return nil, category.ErrDuplicateName
	}
	delete(r.byName, c.Name)
	c.Name = name
	r.byName[name] = id
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if c, ok := r.categories[id]; ok {
		delete(r.byName, c.Name)
	}
	delete(r.categories, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeCategoryRepo) Missing(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := r.categories[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *fakeCategoryRepo) AttachBook(ctx context.Context, categoryIDs []uuid.UUID, bookID uuid.UUID) error {
	for _, cid := range categoryIDs {
		r.categories[cid].Books = append(r.categories[cid].Books, bookID)
	}
	return nil
}

func (r *fakeCategoryRepo) DetachBook(ctx context.Context, categoryIDs []uuid.UUID, bookID uuid.UUID) error {
	return nil
}

func (r *fakeCategoryRepo) Refs(ctx context.Context, ids []uuid.UUID) ([]shared.CategoryRef, error) {
	var refs []shared.CategoryRef
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			refs = append(refs, shared.CategoryRef{ID: c.ID, Name: c.Name})
		}
	}
	return refs, nil
}

type fakeCategoryBookIndex struct {
	removed []uuid.UUID
	count   int64
}

func (i *fakeCategoryBookIndex) RemoveCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	i.removed = append(i.removed, categoryID)
	return i.count, nil
}

func TestCategoryService_Create(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo, &fakeCategoryBookIndex{})

	created, err := svc.Create(context.Background(), &category.CreateCategoryRequest{Name: " Science Fiction "})
	require.NoError(t, err)

	assert.Equal(t, "Science Fiction", created.Name)
	assert.Empty(t, created.Books)
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo, &fakeCategoryBookIndex{})

	_, err := svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "Poetry"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "Poetry"})
	require.ErrorIs(t, err, category.ErrDuplicateName)
	assert.Equal(t, 400, category.ToHTTPStatus(err))
}

func TestCategoryService_Create_EmptyName(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo, &fakeCategoryBookIndex{})

	_, err := svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, 400, category.ToHTTPStatus(err))
	assert.Empty(t, repo.categories)
}

func TestCategoryService_Update_Rename(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo, &fakeCategoryBookIndex{})

	created, err := svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "Sci-Fi"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &category.UpdateCategoryRequest{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", updated.Name)
}

func TestCategoryService_Update_DuplicateName(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo, &fakeCategoryBookIndex{})

	_, err := svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "Essays"})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "Letters"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), second.ID, &category.UpdateCategoryRequest{Name: "Essays"})
	require.ErrorIs(t, err, category.ErrDuplicateName)
}

func TestCategoryService_Delete_CascadesBeforeDeleting(t *testing.T) {
	repo := newFakeCategoryRepo()
	books := &fakeCategoryBookIndex{count: 2}
	svc := NewCategoryService(repo, books)

	created, err := svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "Ephemeral"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	assert.Equal(t, []uuid.UUID{created.ID}, books.removed)
	assert.Equal(t, []uuid.UUID{created.ID}, repo.deleted)
}

func TestCategoryService_Delete_NotFoundSkipsCascade(t *testing.T) {
	repo := newFakeCategoryRepo()
	books := &fakeCategoryBookIndex{}
	svc := NewCategoryService(repo, books)

	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, category.ErrCategoryNotFound)
	assert.Empty(t, books.removed)
}
