package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteshop/storefront/internal/models"
)

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "demo@eliteshop.com",
		"password": "demo123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "demo-user-123", resp.User.ID)
}

func TestLoginEndpoint_Rejections(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "someone@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Short password fails validation before the credential check.
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "demo@eliteshop.com",
		"password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"email":    "new@example.com",
		"password": "secret1",
		"name":     "New User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "New User", resp.User.Name)
}
