package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/shared"
)

type authorService struct {
	repo  author.Repository
	books author.BookIndex
}

func NewAuthorService(repo author.Repository, books author.BookIndex) author.Service {
	return &authorService{
		repo:  repo,
		books: books,
	}
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.AuthorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &author.Author{
		Name:    req.Name,
		Country: req.Country,
	})
	if err != nil {
		return nil, err
	}

	// A fresh author has no books; no expansion round-trip needed.
	return created.ToResponse(nil), nil
}

func (s *authorService) GetAll(ctx context.Context) ([]author.AuthorResponse, error) {
	authors, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	// One summaries query for the union of every author's books.
	var allIDs []uuid.UUID
	for _, a := range authors {
		allIDs = append(allIDs, a.Books...)
	}

	refByID, err := s.bookRefMap(ctx, allIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]author.AuthorResponse, 0, len(authors))
	for i := range authors {
		responses = append(responses, *authors[i].ToResponse(pickRefs(refByID, authors[i].Books)))
	}

	return responses, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	refByID, err := s.bookRefMap(ctx, a.Books)
	if err != nil {
		return nil, err
	}

	return a.ToResponse(pickRefs(refByID, a.Books)), nil
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.AuthorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(a)

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}

	refByID, err := s.bookRefMap(ctx, updated.Books)
	if err != nil {
		return nil, err
	}

	return updated.ToResponse(pickRefs(refByID, updated.Books)), nil
}

// Delete cascades first, deletes second: every book referencing the author
// has its author field cleared, then the author row is removed. The two steps
// are not atomic; a crash in between leaves books already detached, which is
// the accepted failure mode.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return author.ErrAuthorNotFound
	}

	if _, err := s.books.ClearAuthor(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *authorService) bookRefMap(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]shared.BookRef, error) {
	refs, err := s.books.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]shared.BookRef, len(refs))
	for _, ref := range refs {
		byID[ref.ID] = ref
	}
	return byID, nil
}

// pickRefs resolves ids against the ref map, preserving array order and
// skipping ids that no longer resolve.
func pickRefs(byID map[uuid.UUID]shared.BookRef, ids []uuid.UUID) []shared.BookRef {
	refs := make([]shared.BookRef, 0, len(ids))
	for _, id := range ids {
		if ref, ok := byID[id]; ok {
			refs = append(refs, ref)
		}
	}
	return refs
}
