package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/shared"
)

type fakeAuthorRepo struct {
	authors map[uuid.UUID]*author.Author
	order   []uuid.UUID
	deleted []uuid.UUID
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{authors: make(map[uuid.UUID]*author.Author)}
}

func (r *fakeAuthorRepo) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	stored := *a
	stored.ID = uuid.New()
	stored.Books = []uuid.UUID{}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.authors[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return &stored, nil
}

func (r *fakeAuthorRepo) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := r.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAuthorRepo) GetAll(ctx context.Context) ([]author.Author, error) {
	out := make([]author.Author, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.authors[id])
	}
	return out, nil
}

func (r *fakeAuthorRepo) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	if _, ok := r.authors[a.ID]; !ok {
		return nil, author.ErrAuthorNotFound
	}
	stored := *a
	r.authors[a.ID] = &stored
	return &stored, nil
}

func (r *fakeAuthorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.authors, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeAuthorRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.authors[id]
	return ok, nil
}

func (r *fakeAuthorRepo) AttachBook(ctx context.Context, authorID, bookID uuid.UUID) error {
	a := r.authors[authorID]
	a.Books = append(a.Books, bookID)
	return nil
}

func (r *fakeAuthorRepo) DetachBook(ctx context.Context, authorID, bookID uuid.UUID) error {
	a := r.authors[authorID]
	kept := a.Books[:0]
	for _, existing := range a.Books {
		if existing != bookID {
			kept = append(kept, existing)
		}
	}
	a.Books = kept
	return nil
}

func (r *fakeAuthorRepo) Refs(ctx context.Context, ids []uuid.UUID) ([]shared.AuthorRef, error) {
	var refs []shared.AuthorRef
	for _, id := range ids {
		if a, ok := r.authors[id]; ok {
			refs = append(refs, shared.AuthorRef{ID: a.ID, Name: a.Name, Country: a.Country})
		}
	}
	return refs, nil
}

type fakeBookIndex struct {
	summaries      map[uuid.UUID]shared.BookRef
	clearedAuthors []uuid.UUID
	clearCount     int64
}

func newFakeBookIndex() *fakeBookIndex {
	return &fakeBookIndex{summaries: make(map[uuid.UUID]shared.BookRef)}
}

func (i *fakeBookIndex) Summaries(ctx context.Context, ids []uuid.UUID) ([]shared.BookRef, error) {
	var out []shared.BookRef
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if ref, ok := i.summaries[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, ref)
		}
	}
	return out, nil
}

func (i *fakeBookIndex) ClearAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	i.clearedAuthors = append(i.clearedAuthors, authorID)
	return i.clearCount, nil
}

func TestAuthorService_Create(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo, newFakeBookIndex())

	resp, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		Name:    "  Ursula K. Le Guin  ",
		Country: "USA",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ursula K. Le Guin", resp.Name)
	assert.Equal(t, "USA", resp.Country)
	assert.Empty(t, resp.Books)
}

func TestAuthorService_Create_ValidationError(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo, newFakeBookIndex())

	_, err := svc.Create(context.Background(), &author.CreateAuthorRequest{Name: "No Country"})
	require.Error(t, err)
	assert.Equal(t, 400, author.ToHTTPStatus(err))
	assert.Empty(t, repo.authors)
}

func TestAuthorService_GetByID_ExpandsBooksInOrder(t *testing.T) {
	repo := newFakeAuthorRepo()
	books := newFakeBookIndex()
	svc := NewAuthorService(repo, books)

	created, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		Name: "Prolific", Country: "UK",
	})
	require.NoError(t, err)

	book1, book2, gone := uuid.New(), uuid.New(), uuid.New()
	books.summaries[book1] = shared.BookRef{ID: book1, Title: "First"}
	books.summaries[book2] = shared.BookRef{ID: book2, Title: "Second"}

	// gone is in the array but no longer resolves; it must be skipped.
	require.NoError(t, repo.AttachBook(context.Background(), created.ID, book1))
	require.NoError(t, repo.AttachBook(context.Background(), created.ID, gone))
	require.NoError(t, repo.AttachBook(context.Background(), created.ID, book2))

	resp, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	require.Len(t, resp.Books, 2)
	assert.Equal(t, "First", resp.Books[0].Title)
	assert.Equal(t, "Second", resp.Books[1].Title)
}

func TestAuthorService_GetByID_NotFound(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo(), newFakeBookIndex())

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestAuthorService_Update_PartialFields(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo, newFakeBookIndex())

	created, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		Name: "Before", Country: "France",
	})
	require.NoError(t, err)

	name := "After"
	resp, err := svc.Update(context.Background(), created.ID, &author.UpdateAuthorRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "After", resp.Name)
	assert.Equal(t, "France", resp.Country)
}

func TestAuthorService_Delete_ClearsBooksFirst(t *testing.T) {
	repo := newFakeAuthorRepo()
	books := newFakeBookIndex()
	books.clearCount = 3
	svc := NewAuthorService(repo, books)

	created, err := svc.Create(context.Background(), &author.CreateAuthorRequest{
		Name: "Leaving", Country: "Chile",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	assert.Equal(t, []uuid.UUID{created.ID}, books.clearedAuthors)
	assert.Equal(t, []uuid.UUID{created.ID}, repo.deleted)
	assert.Empty(t, repo.authors)
}

func TestAuthorService_Delete_NotFoundSkipsCascade(t *testing.T) {
	repo := newFakeAuthorRepo()
	books := newFakeBookIndex()
	svc := NewAuthorService(repo, books)

	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, author.ErrAuthorNotFound)
	assert.Empty(t, books.clearedAuthors)
}
