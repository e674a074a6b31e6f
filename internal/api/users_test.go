package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	router := newTestRouter(t)

	id := createTestUser(t, router, "John", "Doe", "1990-01-15")

	recorder := doRequest(t, router, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(id), body["id"])
	assert.Equal(t, "John", body["first_name"])
	assert.Equal(t, "Doe", body["last_name"])
	assert.Equal(t, "1990-01-15", body["date_of_birth"])
}

func TestCreateUserValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name    string
		payload gin.H
		wantErr string
	}{
		{
			name:    "missing first_name",
			payload: gin.H{"last_name": "Doe", "date_of_birth": "1990-01-15"},
			wantErr: "first_name, last_name and date_of_birth are required",
		},
		{
			name:    "empty last_name",
			payload: gin.H{"first_name": "John", "last_name": "", "date_of_birth": "1990-01-15"},
			wantErr: "first_name, last_name and date_of_birth are required",
		},
		{
			name:    "missing date_of_birth",
			payload: gin.H{"first_name": "John", "last_name": "Doe"},
			wantErr: "first_name, last_name and date_of_birth are required",
		},
		{
			name:    "wrong date format",
			payload: gin.H{"first_name": "John", "last_name": "Doe", "date_of_birth": "15/01/1990"},
			wantErr: "date_of_birth must be YYYY-MM-DD",
		},
		{
			name:    "impossible calendar date",
			payload: gin.H{"first_name": "John", "last_name": "Doe", "date_of_birth": "1990-02-30"},
			wantErr: "date_of_birth must be YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doRequest(t, router, http.MethodPost, "/users", tt.payload, nil)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, tt.wantErr, decodeBody(t, recorder)["error"])
		})
	}
}

func TestListUsers(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodGet, "/users", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "[]", recorder.Body.String())

	first := createTestUser(t, router, "John", "Doe", "1990-01-15")
	second := createTestUser(t, router, "Jane", "Smith", "1985-05-20")

	recorder = doRequest(t, router, http.MethodGet, "/users", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, float64(first), users[0]["id"])
	assert.Equal(t, float64(second), users[1]["id"])
}

func TestGetUserNotFound(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodGet, "/users/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "user not found", decodeBody(t, recorder)["error"])
}

func TestUpdateUserAuth(t *testing.T) {
	router := newTestRouter(t)
	id := createTestUser(t, router, "John", "Doe", "1990-01-15")
	path := fmt.Sprintf("/users/%d", id)

	// No identity header.
	recorder := doRequest(t, router, http.MethodPatch, path, gin.H{"last_name": "X"}, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "X-User-Id header is required", decodeBody(t, recorder)["error"])

	// Unparseable identity collapses to no identity.
	recorder = doRequest(t, router, http.MethodPatch, path, gin.H{"last_name": "X"}, asUser("abc"))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Someone else's identity.
	recorder = doRequest(t, router, http.MethodPatch, path, gin.H{"last_name": "X"}, asUser(fmt.Sprint(id+1)))
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "forbidden: you can only update your own user", decodeBody(t, recorder)["error"])
}

func TestUpdateUserNotFound(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPatch, "/users/999", gin.H{"last_name": "X"}, asUser("999"))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "user not found", decodeBody(t, recorder)["error"])
}

func TestUpdateUserPartial(t *testing.T) {
	router := newTestRouter(t)
	id := createTestUser(t, router, "John", "Doe", "1990-01-15")
	path := fmt.Sprintf("/users/%d", id)
	headers := asUser(fmt.Sprint(id))

	recorder := doRequest(t, router, http.MethodPatch, path, gin.H{"last_name": "X"}, headers)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user updated", decodeBody(t, recorder)["message"])

	recorder = doRequest(t, router, http.MethodGet, path, nil, nil)
	body := decodeBody(t, recorder)
	assert.Equal(t, "John", body["first_name"])
	assert.Equal(t, "X", body["last_name"])
	assert.Equal(t, "1990-01-15", body["date_of_birth"])
}

func TestUpdateUserClearsDateOfBirth(t *testing.T) {
	router := newTestRouter(t)
	id := createTestUser(t, router, "John", "Doe", "1990-01-15")
	path := fmt.Sprintf("/users/%d", id)

	recorder := doRequest(t, router, http.MethodPatch, path, gin.H{"date_of_birth": nil}, asUser(fmt.Sprint(id)))
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, router, http.MethodGet, path, nil, nil)
	body := decodeBody(t, recorder)
	assert.Nil(t, body["date_of_birth"])
}

func TestUpdateUserValidation(t *testing.T) {
	router := newTestRouter(t)
	id := createTestUser(t, router, "John", "Doe", "1990-01-15")
	path := fmt.Sprintf("/users/%d", id)
	headers := asUser(fmt.Sprint(id))

	// No supported fields.
	recorder := doRequest(t, router, http.MethodPatch, path, gin.H{"unknown": "value"}, headers)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "no supported fields to update", decodeBody(t, recorder)["error"])

	// Invalid date.
	recorder = doRequest(t, router, http.MethodPatch, path, gin.H{"date_of_birth": "not-a-date"}, headers)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "date_of_birth must be YYYY-MM-DD", decodeBody(t, recorder)["error"])
}
