package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book"
)

type stubBookService struct {
	lastCreate *book.CreateBookInput
	lastUpdate *book.UpdateBookInput
	lastFilter book.ListFilter
	createErr  error
	response   *book.BookResponse
}

func (s *stubBookService) List(ctx context.Context, filter book.ListFilter) ([]book.BookResponse, error) {
	s.lastFilter = filter
	if s.response == nil {
		return []book.BookResponse{}, nil
	}
	return []book.BookResponse{*s.response}, nil
}

func (s *stubBookService) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*book.BookResponse, error) {
	if s.response == nil {
		return nil, book.ErrBookNotFound
	}
	return s.response, nil
}

func (s *stubBookService) Create(ctx context.Context, in *book.CreateBookInput) (*book.BookResponse, error) {
	s.lastCreate = in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.response, nil
}

func (s *stubBookService) Update(ctx context.Context, id uuid.UUID, in *book.UpdateBookInput) (*book.BookResponse, error) {
	s.lastUpdate = in
	return s.response, nil
}

func (s *stubBookService) SoftDelete(ctx context.Context, id uuid.UUID) (*book.BookResponse, error) {
	if s.response == nil {
		return nil, book.ErrBookNotFound
	}
	return s.response, nil
}

func setupBookRouter(svc book.Service, maxFileSize int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewBookHandler(svc, maxFileSize)
	router.GET("/api/books", h.GetAll)
	router.GET("/api/books/:id", h.GetByID)
	router.POST("/api/books", h.Create)
	router.PUT("/api/books/:id", h.Update)
	router.DELETE("/api/books/:id", h.Delete)
	return router
}

func sampleResponse() *book.BookResponse {
	return &book.BookResponse{
		ID:    uuid.New(),
		Title: "Sample",
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestBookHandler_Create_Multipart(t *testing.T) {
	svc := &stubBookService{response: sampleResponse()}
	router := setupBookRouter(svc, 1024)

	authorID := uuid.New().String()
	body, contentType := multipartBody(t, map[string]string{
		"title":      "Dune",
		"author":     authorID,
		"categories": `["a","b"]`,
	}, "coverImage", "cover.png", []byte{0x89, 0x50, 0x4E, 0x47})

	req := httptest.NewRequest(http.MethodPost, "/api/books", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, svc.lastCreate)
	assert.Equal(t, "Dune", svc.lastCreate.Title)
	assert.Equal(t, authorID, svc.lastCreate.AuthorID)
	assert.Equal(t, []string{"a", "b"}, svc.lastCreate.Categories)
	require.NotNil(t, svc.lastCreate.Cover)
	assert.Equal(t, ".png", svc.lastCreate.Cover.Ext)

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data)
}

func TestBookHandler_Create_FileTooLarge(t *testing.T) {
	svc := &stubBookService{response: sampleResponse()}
	router := setupBookRouter(svc, 8)

	body, contentType := multipartBody(t, map[string]string{
		"title":  "Heavy",
		"author": uuid.New().String(),
	}, "coverImage", "big.jpg", bytes.Repeat([]byte{1}, 64))

	req := httptest.NewRequest(http.MethodPost, "/api/books", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.lastCreate)

	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, book.ErrFileTooLarge.Error(), envelope.Error)
}

func TestBookHandler_Create_WithoutFile(t *testing.T) {
	svc := &stubBookService{response: sampleResponse()}
	router := setupBookRouter(svc, 1024)

	body, contentType := multipartBody(t, map[string]string{
		"title":  "Plain",
		"author": uuid.New().String(),
	}, "", "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/books", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.lastCreate)
	assert.Nil(t, svc.lastCreate.Cover)
	assert.Equal(t, []string{}, svc.lastCreate.Categories)
}

func TestBookHandler_Update_OmittedFieldsStayNil(t *testing.T) {
	svc := &stubBookService{response: sampleResponse()}
	router := setupBookRouter(svc, 1024)

	body, contentType := multipartBody(t, map[string]string{
		"title": "Renamed",
	}, "", "", nil)

	req := httptest.NewRequest(http.MethodPut, "/api/books/"+uuid.New().String(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastUpdate)
	require.NotNil(t, svc.lastUpdate.Title)
	assert.Equal(t, "Renamed", *svc.lastUpdate.Title)
	assert.Nil(t, svc.lastUpdate.AuthorID)
	assert.Nil(t, svc.lastUpdate.Categories)
	assert.Nil(t, svc.lastUpdate.Cover)
}

func TestBookHandler_Update_EmptyCategoriesFieldClears(t *testing.T) {
	svc := &stubBookService{response: sampleResponse()}
	router := setupBookRouter(svc, 1024)

	body, contentType := multipartBody(t, map[string]string{
		"categories": "",
	}, "", "", nil)

	req := httptest.NewRequest(http.MethodPut, "/api/books/"+uuid.New().String(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastUpdate)
	require.NotNil(t, svc.lastUpdate.Categories)
	assert.Empty(t, *svc.lastUpdate.Categories)
}

func TestBookHandler_InvalidID(t *testing.T) {
	svc := &stubBookService{response: sampleResponse()}
	router := setupBookRouter(svc, 1024)

	req := httptest.NewRequest(http.MethodGet, "/api/books/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookHandler_GetAll_Filters(t *testing.T) {
	svc := &stubBookService{response: sampleResponse()}
	router := setupBookRouter(svc, 1024)

	authorID := uuid.New()
	cat := uuid.New()

	req := httptest.NewRequest(http.MethodGet,
		"/api/books?author="+authorID.String()+"&categories="+cat.String()+"&title=dune&includeDeleted=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastFilter.AuthorID)
	assert.Equal(t, authorID, *svc.lastFilter.AuthorID)
	assert.Equal(t, []uuid.UUID{cat}, svc.lastFilter.CategoryIDs)
	assert.Equal(t, "dune", svc.lastFilter.Title)
	assert.True(t, svc.lastFilter.IncludeDeleted)

	var envelope struct {
		Success bool `json:"success"`
		Count   *int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Count)
	assert.Equal(t, 1, *envelope.Count)
}

func TestBookHandler_GetAll_InvalidAuthorFilter(t *testing.T) {
	svc := &stubBookService{}
	router := setupBookRouter(svc, 1024)

	req := httptest.NewRequest(http.MethodGet, "/api/books?author=banana", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookHandler_Delete(t *testing.T) {
	svc := &stubBookService{response: sampleResponse()}
	router := setupBookRouter(svc, 1024)

	req := httptest.NewRequest(http.MethodDelete, "/api/books/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "Book deleted successfully", envelope.Message)
}
