package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/createCustomer", map[string]any{
		"name": "Noa Levi",
		"city": "Haifa",
		"age":  34,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[CustomerResponse](t, resp.Body.Bytes())
	assert.True(t, envelope.Success)
	assert.NotZero(t, envelope.Data.ID)
	assert.Equal(t, "Noa Levi", envelope.Data.Name)
	require.NotNil(t, envelope.Data.Age)
	assert.Equal(t, 34, *envelope.Data.Age)
}

func TestCreateCustomer_AgeAsNumericString(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/createCustomer", map[string]any{
		"name": "Noa Levi",
		"age":  "34",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[CustomerResponse](t, resp.Body.Bytes())
	require.NotNil(t, envelope.Data.Age)
	assert.Equal(t, 34, *envelope.Data.Age)
}

func TestCreateCustomer_OptionalFieldsOmitted(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/createCustomer", map[string]any{"name": "Sparse"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[CustomerResponse](t, resp.Body.Bytes())
	assert.Nil(t, envelope.Data.City)
	assert.Nil(t, envelope.Data.Age)
}

func TestCreateCustomer_MissingName(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/createCustomer", map[string]any{"city": "Haifa"})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestListCustomers(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Post("/createCustomer", map[string]any{"name": "First"})
	ts.api.Post("/createCustomer", map[string]any{"name": "Second"})

	resp := ts.api.Get("/listCustomers")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[ListCustomersResponse](t, resp.Body.Bytes())
	require.Len(t, envelope.Data.Customers, 2)
	assert.Equal(t, "First", envelope.Data.Customers[0].Name)
}

func TestUpdateCustomer_PartialFields(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Post("/createCustomer", map[string]any{"name": "Noa Levi", "city": "Haifa"})

	resp := ts.api.Put("/updateCustomer/1", map[string]any{"city": "Tel Aviv"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[CustomerResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Noa Levi", envelope.Data.Name)
	require.NotNil(t, envelope.Data.City)
	assert.Equal(t, "Tel Aviv", *envelope.Data.City)
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/updateCustomer/999", map[string]any{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}

func TestDeleteCustomer_RemovesLoans(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Post("/createBook", map[string]any{"name": "Dune", "author": "Frank Herbert", "type": 1})
	ts.api.Post("/createCustomer", map[string]any{"name": "Noa Levi"})
	loanResp := ts.api.Post("/createLoan", map[string]any{
		"customer_id": 1,
		"book_id":     1,
		"loan_date":   "2024-03-01 10:00",
	})
	require.Equal(t, http.StatusCreated, loanResp.Code, loanResp.Body.String())

	resp := ts.api.Delete("/deleteCustomer/1")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	loans := decodeEnvelope[ListLoansResponse](t, ts.api.Get("/listLoans").Body.Bytes())
	assert.Empty(t, loans.Data.Loans)

	// The held book is available again.
	books := decodeEnvelope[ListBooksResponse](t, ts.api.Get("/listBooks").Body.Bytes())
	require.Len(t, books.Data.Books, 1)
	assert.True(t, books.Data.Books[0].IsAvailable)
}

func TestDeleteCustomer_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Delete("/deleteCustomer/999")
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}
