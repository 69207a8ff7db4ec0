package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TakeshiImakurusu/contract-management-system/config"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAuthConfig(t *testing.T) *config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hashedpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret",
			TokenExpireHours: 24,
		},
		Users: []config.User{
			{Username: "operator", Password: "operatorpass"},
			{Username: "scoped", Password: "scopedpass", KentemScope: "K-000123"},
			{Username: "hashed", PasswordHash: string(hash)},
		},
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	handler := NewAuthHandler(testAuthConfig(t))

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
		expectedScope  string
	}{
		{
			name:           "valid login",
			body:           map[string]string{"username": "operator", "password": "operatorpass"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "scoped operator",
			body:           map[string]string{"username": "scoped", "password": "scopedpass"},
			expectedStatus: http.StatusOK,
			expectedScope:  "K-000123",
		},
		{
			name:           "bcrypt credentials",
			body:           map[string]string{"username": "hashed", "password": "hashedpass"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid username",
			body:           map[string]string{"username": "nobody", "password": "operatorpass"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid password",
			body:           map[string]string{"username": "operator", "password": "wrongpass"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			body:           map[string]string{"username": "operator"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/login", handler.Login)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.expectedStatus == http.StatusOK {
				var response LoginResponse
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Errorf("Failed to parse response: %v", err)
				}
				if response.Token == "" {
					t.Error("Expected token in response")
				}
				if response.Username != tt.body["username"] {
					t.Errorf("Expected username '%s', got '%s'", tt.body["username"], response.Username)
				}
				if response.KentemScope != tt.expectedScope {
					t.Errorf("Expected kentem_scope '%s', got '%s'", tt.expectedScope, response.KentemScope)
				}
			}
		})
	}
}

func TestAuthHandlerGetCurrentUser(t *testing.T) {
	handler := NewAuthHandler(testAuthConfig(t))

	router := gin.New()
	router.GET("/me", func(c *gin.Context) {
		c.Set("username", "scoped")
		c.Set("kentem_scope", "K-000123")
		handler.GetCurrentUser(c)
	})

	req := httptest.NewRequest("GET", "/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["username"] != "scoped" {
		t.Errorf("Expected username 'scoped', got '%s'", response["username"])
	}
	if response["kentem_scope"] != "K-000123" {
		t.Errorf("Expected kentem_scope 'K-000123', got '%s'", response["kentem_scope"])
	}
}
