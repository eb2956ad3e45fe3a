package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared"
	"library-catalog/pkg/logger"
)

type bookService struct {
	repo       book.Repository
	authors    book.AuthorDirectory
	categories book.CategoryDirectory
	covers     book.CoverStore
	refs       referenceMaintainer
}

func NewBookService(
	repo book.Repository,
	authors book.AuthorDirectory,
	categories book.CategoryDirectory,
	covers book.CoverStore,
) book.Service {
	return &bookService{
		repo:       repo,
		authors:    authors,
		categories: categories,
		covers:     covers,
		refs: referenceMaintainer{
			authors:    authors,
			categories: categories,
		},
	}
}

func (s *bookService) List(ctx context.Context, filter book.ListFilter) ([]book.BookResponse, error) {
	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.expand(ctx, books)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*book.BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}

	responses, err := s.expand(ctx, []book.Book{*b})
	if err != nil {
		return nil, err
	}

	return &responses[0], nil
}

// Create runs the write pipeline in strict order: required fields, author
// existence, category existence, cover upload, persist, reference
// maintenance, re-fetch. A failure at any step short-circuits the rest, so a
// rejected create leaves the reverse indexes untouched.
func (s *bookService) Create(ctx context.Context, in *book.CreateBookInput) (*book.BookResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	authorID, err := uuid.Parse(in.AuthorID)
	if err != nil {
		return nil, book.ErrInvalidAuthorID
	}

	exists, err := s.authors.Exists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, book.ErrAuthorNotFound
	}

	categoryIDs, err := s.resolveCategories(ctx, in.Categories)
	if err != nil {
		return nil, err
	}

	coverImage, err := s.storeCover(ctx, in.Cover)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &book.Book{
		Title:      in.Title,
		AuthorID:   &authorID,
		Categories: categoryIDs,
		CoverImage: coverImage,
	})
	if err != nil {
		return nil, err
	}

	if err := s.refs.bookCreated(ctx, created); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, created.ID, false)
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, in *book.UpdateBookInput) (*book.BookResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// Soft-deleted books stay addressable for updates.
	old, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	next := *old

	if in.Title != nil {
		next.Title = *in.Title
	}

	if in.AuthorID != nil {
		authorID, err := uuid.Parse(*in.AuthorID)
		if err != nil {
			return nil, book.ErrInvalidAuthorID
		}
		exists, err := s.authors.Exists(ctx, authorID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, book.ErrAuthorNotFound
		}
		next.AuthorID = &authorID
	}

	categoriesReplaced := in.Categories != nil
	if categoriesReplaced {
		categoryIDs, err := s.resolveCategories(ctx, *in.Categories)
		if err != nil {
			return nil, err
		}
		next.Categories = categoryIDs
	}

	var replacedCover *string
	if in.Cover != nil {
		coverImage, err := s.storeCover(ctx, in.Cover)
		if err != nil {
			return nil, err
		}
		replacedCover = next.CoverImage
		next.CoverImage = coverImage
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, err
	}

	// The old cover is unreachable once the row points at the new filename;
	// removal is best effort, an orphaned object is not worth failing the
	// update over.
	if replacedCover != nil {
		if err := s.covers.Delete(ctx, *replacedCover); err != nil {
			logger.Error("failed to remove replaced cover", err)
		}
	}

	// Reverse indexes only track non-deleted books; a soft-deleted book was
	// already detached, so there is nothing to move.
	if !updated.Deleted {
		if err := s.refs.bookUpdated(ctx, old, updated, categoriesReplaced); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, updated.ID, true)
}

func (s *bookService) SoftDelete(ctx context.Context, id uuid.UUID) (*book.BookResponse, error) {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.refs.bookDeleted(ctx, deleted); err != nil {
		return nil, err
	}

	responses, err := s.expand(ctx, []book.Book{*deleted})
	if err != nil {
		return nil, err
	}

	return &responses[0], nil
}

// resolveCategories parses the normalized identifier strings and verifies
// every one of them names an existing category. All-or-nothing: a single
// unknown id rejects the whole write before any reference mutation happens.
func (s *bookService) resolveCategories(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, v := range raw {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, book.ErrInvalidCategoryID
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return ids, nil
	}

	missing, err := s.categories.Missing(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, book.ErrCategoryNotFound
	}

	return ids, nil
}

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// storeCover uploads the extracted cover binary under a generated filename
// and returns that filename for persistence. Only the filename is stored on
// the book; the binary is served back through the uploads route.
func (s *bookService) storeCover(ctx context.Context, cover *book.CoverUpload) (*string, error) {
	if cover == nil {
		return nil, nil
	}

	ext := strings.ToLower(cover.Ext)
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	filename := uuid.NewString() + ext

	if err := s.covers.Upload(ctx, filename, cover.Data, cover.ContentType); err != nil {
		logger.Error("cover upload failed", err)
		return nil, book.ErrFileUpload
	}

	return &filename, nil
}

// expand resolves author and category references for a batch of books with
// one directory round-trip each.
func (s *bookService) expand(ctx context.Context, books []book.Book) ([]book.BookResponse, error) {
	var authorIDs []uuid.UUID
	var categoryIDs []uuid.UUID
	for i := range books {
		if books[i].AuthorID != nil {
			authorIDs = append(authorIDs, *books[i].AuthorID)
		}
		categoryIDs = append(categoryIDs, books[i].Categories...)
	}

	authorRefs, err := s.authors.Refs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorByID := make(map[uuid.UUID]shared.AuthorRef, len(authorRefs))
	for _, ref := range authorRefs {
		authorByID[ref.ID] = ref
	}

	categoryRefs, err := s.categories.Refs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	categoryByID := make(map[uuid.UUID]shared.CategoryRef, len(categoryRefs))
	for _, ref := range categoryRefs {
		categoryByID[ref.ID] = ref
	}

	responses := make([]book.BookResponse, 0, len(books))
	for i := range books {
		b := books[i]

		resp := book.BookResponse{
			ID:         b.ID,
			Title:      b.Title,
			Categories: []shared.CategoryRef{},
			CoverImage: b.CoverImage,
			Deleted:    b.Deleted,
			CreatedAt:  b.CreatedAt,
			UpdatedAt:  b.UpdatedAt,
		}

		if b.AuthorID != nil {
			if ref, ok := authorByID[*b.AuthorID]; ok {
				resp.Author = &ref
			}
		}

		for _, cid := range b.Categories {
			if ref, ok := categoryByID[cid]; ok {
				resp.Categories = append(resp.Categories, ref)
			}
		}

		responses = append(responses, resp)
	}

	return responses, nil
}
