package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared/response"
)

type BookHandler struct {
	service book.Service
	// maxFileSize caps an uploaded cover image in bytes.
	maxFileSize int64
}

func NewBookHandler(svc book.Service, maxFileSize int64) *BookHandler {
	return &BookHandler{
		service:     svc,
		maxFileSize: maxFileSize,
	}
}

// GetAll - GET /api/books
// Query parameters: author, categories (repeatable or comma-separated),
// title (substring), includeDeleted.
func (h *BookHandler) GetAll(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	books, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, book.ToHTTPStatus(err), err.Error())
		return
	}

	response.SuccessWithCount(c, http.StatusOK, books, len(books))
}

// GetByID - GET /api/books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, book.ErrInvalidID.Error())
		return
	}

	includeDeleted := c.Query("includeDeleted") == "true"

	resp, err := h.service.GetByID(c.Request.Context(), id, includeDeleted)
	if err != nil {
		response.Error(c, book.ToHTTPStatus(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Create - POST /api/books (multipart/form-data)
func (h *BookHandler) Create(c *gin.Context) {
	cover, err := h.extractCover(c)
	if err != nil {
		response.Error(c, book.ToHTTPStatus(err), err.Error())
		return
	}

	in := &book.CreateBookInput{
		Title:      c.PostForm("title"),
		AuthorID:   c.PostForm("author"),
		Categories: book.ParseCategoriesField(c.PostFormArray("categories")),
		Cover:      cover,
	}

	resp, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, book.ToHTTPStatus(err), err.Error())
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Update - PUT /api/books/:id (multipart/form-data, all fields optional)
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, book.ErrInvalidID.Error())
		return
	}

	cover, err := h.extractCover(c)
	if err != nil {
		response.Error(c, book.ToHTTPStatus(err), err.Error())
		return
	}

	in := &book.UpdateBookInput{Cover: cover}

	if title, ok := c.GetPostForm("title"); ok {
		in.Title = &title
	}
	if authorID, ok := c.GetPostForm("author"); ok {
		in.AuthorID = &authorID
	}
	if _, ok := c.GetPostForm("categories"); ok || len(c.PostFormArray("categories")) > 0 {
		categories := book.ParseCategoriesField(c.PostFormArray("categories"))
		in.Categories = &categories
	}

	resp, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, book.ToHTTPStatus(err), err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete - DELETE /api/books/:id (soft delete)
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, book.ErrInvalidID.Error())
		return
	}

	resp, err := h.service.SoftDelete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, book.ToHTTPStatus(err), err.Error())
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book deleted successfully", resp)
}

func parseListFilter(c *gin.Context) (book.ListFilter, error) {
	filter := book.ListFilter{
		Title:          strings.TrimSpace(c.Query("title")),
		IncludeDeleted: c.Query("includeDeleted") == "true",
	}

	if raw := c.Query("author"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, book.ErrInvalidAuthorID
		}
		filter.AuthorID = &id
	}

	// Category filters accept the same flexible shapes as the write path.
	for _, v := range book.ParseCategoriesField(c.QueryArray("categories")) {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, book.ErrInvalidCategoryID
		}
		filter.CategoryIDs = append(filter.CategoryIDs, id)
	}

	return filter, nil
}
