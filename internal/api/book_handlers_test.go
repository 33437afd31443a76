package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBook(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/createBook", map[string]any{
		"name":           "Dune",
		"author":         "Frank Herbert",
		"year_published": 1965,
		"type":           2,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[BookResponse](t, resp.Body.Bytes())
	assert.True(t, envelope.Success)
	assert.NotZero(t, envelope.Data.ID)
	assert.Equal(t, "Dune", envelope.Data.Name)
	assert.Equal(t, 2, envelope.Data.Type)
	assert.True(t, envelope.Data.IsAvailable)
}

func TestCreateBook_TypeAsNumericString(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/createBook", map[string]any{
		"name":   "Dune",
		"author": "Frank Herbert",
		"type":   "2",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[BookResponse](t, resp.Body.Bytes())
	assert.Equal(t, 2, envelope.Data.Type)
}

func TestCreateBook_TypeOutOfRange(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/createBook", map[string]any{
		"name":   "Dune",
		"author": "Frank Herbert",
		"type":   "5",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.False(t, envelope.Success)

	// No partial write happened.
	listResp := ts.api.Get("/listBooks")
	list := decodeEnvelope[ListBooksResponse](t, listResp.Body.Bytes())
	assert.Empty(t, list.Data.Books)
}

func TestCreateBook_TypeNotNumeric(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/createBook", map[string]any{
		"name":   "Dune",
		"author": "Frank Herbert",
		"type":   "often",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestCreateBook_MissingName(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/createBook", map[string]any{
		"author": "Frank Herbert",
		"type":   1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestListBooks(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/listBooks")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[ListBooksResponse](t, resp.Body.Bytes())
	assert.True(t, envelope.Success)
	assert.Empty(t, envelope.Data.Books)

	ts.api.Post("/createBook", map[string]any{"name": "A", "author": "B", "type": 1})
	ts.api.Post("/createBook", map[string]any{"name": "C", "author": "D", "type": 3})

	resp = ts.api.Get("/listBooks")
	envelope = decodeEnvelope[ListBooksResponse](t, resp.Body.Bytes())
	require.Len(t, envelope.Data.Books, 2)
	assert.Equal(t, "A", envelope.Data.Books[0].Name)
}

func TestUpdateBook_PartialFields(t *testing.T) {
	ts := setupTestServer(t)

	created := decodeEnvelope[BookResponse](t, ts.api.Post("/createBook", map[string]any{
		"name": "Dune", "author": "Frank Herbert", "type": 2,
	}).Body.Bytes())

	resp := ts.api.Put("/updateBook/1", map[string]any{"name": "Dune Messiah"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[BookResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Dune Messiah", envelope.Data.Name)
	assert.Equal(t, "Frank Herbert", envelope.Data.Author)
	assert.Equal(t, created.Data.Type, envelope.Data.Type)
}

func TestUpdateBook_InvalidType(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Post("/createBook", map[string]any{"name": "Dune", "author": "Frank Herbert", "type": 2})

	resp := ts.api.Put("/updateBook/1", map[string]any{"name": "Changed", "type": 7})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	// The valid field in the same request did not land either.
	list := decodeEnvelope[ListBooksResponse](t, ts.api.Get("/listBooks").Body.Bytes())
	require.Len(t, list.Data.Books, 1)
	assert.Equal(t, "Dune", list.Data.Books[0].Name)
}

func TestUpdateBook_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/updateBook/999", map[string]any{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}

func TestDeleteBook(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Post("/createBook", map[string]any{"name": "Dune", "author": "Frank Herbert", "type": 2})

	resp := ts.api.Delete("/deleteBook/1")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	list := decodeEnvelope[ListBooksResponse](t, ts.api.Get("/listBooks").Body.Bytes())
	assert.Empty(t, list.Data.Books)
}

func TestDeleteBook_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Delete("/deleteBook/999")
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}
