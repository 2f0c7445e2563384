package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newServer(t)

	code, resp := do(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"login":            "alice",
		"password":         "secret1234",
		"confirm_password": "secret1234",
	})
	assert.Equal(t, http.StatusCreated, code)
	assert.True(t, resp.Status)

	// Duplicate login.
	code, _ = do(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"login":            "alice",
		"password":         "other12345",
		"confirm_password": "other12345",
	})
	assert.Equal(t, http.StatusConflict, code)

	token := loginExisting(t, r, "alice", "secret1234")
	assert.NotEmpty(t, token)

	code, _ = do(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"login":    "alice",
		"password": "wrongpass1",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newServer(t)

	tests := []struct {
		name                     string
		login, password, confirm string
	}{
		{"login too short", "ab", "secret1234", "secret1234"},
		{"login with symbols", "ali ce!", "secret1234", "secret1234"},
		{"password too short", "alice", "abc", "abc"},
		{"passwords do not match", "alice", "secret1234", "secret9999"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := do(t, r, http.MethodPost, "/auth/register", "", gin.H{
				"login":            tc.login,
				"password":         tc.password,
				"confirm_password": tc.confirm,
			})
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, resp.Status)
		})
	}
}

func TestAuthAndAdminGates(t *testing.T) {
	r, reg := newServer(t)

	// No token at all.
	code, _ := do(t, r, http.MethodGet, "/tables", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, r, http.MethodGet, "/tables", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// Registered waiters are never admins.
	waiter := loginAs(t, r, "alice")
	code, _ = do(t, r, http.MethodGet, "/tables", waiter, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodPost, "/tables", waiter, gin.H{"table_number": 1, "seats": 4})
	assert.Equal(t, http.StatusForbidden, code)

	admin := loginAsAdmin(t, r, reg)
	code, _ = do(t, r, http.MethodPost, "/tables", admin, gin.H{"table_number": 1, "seats": 4})
	assert.Equal(t, http.StatusCreated, code)
}
