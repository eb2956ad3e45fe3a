package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book"
)

// referenceMaintainer keeps the books arrays on Author and Category documents
// consistent with Book.AuthorID / Book.Categories across the mutating flows.
//
// The underlying attach/detach operations have set semantics: repeated
// attaches and detaches of the same membership are no-ops, so every flow here
// is idempotent. The multi-entity sequences are NOT atomic - a crash between
// steps can leave a reverse index out of step with the book's own fields,
// which is an accepted limitation of the denormalized design.
type referenceMaintainer struct {
	authors    book.AuthorDirectory
	categories book.CategoryDirectory
}

// bookCreated attaches the new book id to its author's books array and to
// each listed category's books array.
func (m *referenceMaintainer) bookCreated(ctx context.Context, b *book.Book) error {
	if b.AuthorID != nil {
		if err := m.authors.AttachBook(ctx, *b.AuthorID, b.ID); err != nil {
			return err
		}
	}

	return m.categories.AttachBook(ctx, b.Categories, b.ID)
}

// bookUpdated reconciles the reverse indexes after an update. An author
// change moves the book id between the two authors. A categories change is a
// full replace: detach from everything previously listed, attach to
// everything now listed (overlaps are harmless under set semantics).
func (m *referenceMaintainer) bookUpdated(ctx context.Context, old, updated *book.Book, categoriesReplaced bool) error {
	if authorChanged(old.AuthorID, updated.AuthorID) {
		if old.AuthorID != nil {
			if err := m.authors.DetachBook(ctx, *old.AuthorID, updated.ID); err != nil {
				return err
			}
		}
		if updated.AuthorID != nil {
			if err := m.authors.AttachBook(ctx, *updated.AuthorID, updated.ID); err != nil {
				return err
			}
		}
	}

	if categoriesReplaced {
		if err := m.categories.DetachBook(ctx, old.Categories, updated.ID); err != nil {
			return err
		}
		if err := m.categories.AttachBook(ctx, updated.Categories, updated.ID); err != nil {
			return err
		}
	}

	return nil
}

// bookDeleted prunes the soft-deleted book from the reverse indexes. The
// book's own author/categories fields stay intact so the relationship can be
// inspected or restored later.
func (m *referenceMaintainer) bookDeleted(ctx context.Context, b *book.Book) error {
	if b.AuthorID != nil {
		if err := m.authors.DetachBook(ctx, *b.AuthorID, b.ID); err != nil {
			return err
		}
	}

	return m.categories.DetachBook(ctx, b.Categories, b.ID)
}

func authorChanged(old, updated *uuid.UUID) bool {
	switch {
	case old == nil && updated == nil:
		return false
	case old == nil || updated == nil:
		return true
	default:
		return *old != *updated
	}
}
