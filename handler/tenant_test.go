package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TakeshiImakurusu/contract-management-system/service"
	"github.com/gin-gonic/gin"
)

func tenantRouter(env *testEnv) *gin.Engine {
	handler := NewTenantHandler(env.contracts)

	router := gin.New()
	router.Use(scopeFromHeader)
	router.GET("/tenants", handler.List)
	router.GET("/tenants/:kentemId", handler.Get)
	return router
}

func listedTenantIDs(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	var response struct {
		Tenants []service.TenantSummary `json:"tenants"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	ids := make([]string, len(response.Tenants))
	for i, s := range response.Tenants {
		ids[i] = s.KentemID
	}
	return ids
}

func TestTenantHandlerList(t *testing.T) {
	router := tenantRouter(newTestEnv())

	tests := []struct {
		name        string
		target      string
		scope       string
		expectedIDs []string
	}{
		{
			name:   "sorted by nearest expiry",
			target: "/tenants",
			// c3 expires 2025-09-30, c1 2026-03-31, c2 2026-07-31.
			expectedIDs: []string{"K-000777", "K-000123", "K-000456"},
		},
		{
			name:        "keyword filter",
			target:      "/tenants?q=" + "%E3%82%A2%E3%83%BC%E3%82%AF", // アーク
			expectedIDs: []string{"K-000123"},
		},
		{
			name:        "kentem id filter",
			target:      "/tenants?kentem_id=456",
			expectedIDs: []string{"K-000456"},
		},
		{
			name:        "tenant scope",
			target:      "/tenants",
			scope:       "K-000456",
			expectedIDs: []string{"K-000456"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, "GET", tt.target, tt.scope, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			ids := listedTenantIDs(t, w)
			if len(ids) != len(tt.expectedIDs) {
				t.Fatalf("Expected %d tenants, got %d (%v)", len(tt.expectedIDs), len(ids), ids)
			}
			for i, id := range tt.expectedIDs {
				if ids[i] != id {
					t.Errorf("Expected tenant %s at position %d, got %s", id, i, ids[i])
				}
			}
		})
	}
}

func TestTenantHandlerGet(t *testing.T) {
	router := tenantRouter(newTestEnv())

	w := serve(router, "GET", "/tenants/K-000123", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Tenant service.TenantSummary `json:"tenant"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Tenant.KentemID != "K-000123" {
		t.Errorf("Expected tenant K-000123, got %s", response.Tenant.KentemID)
	}
	if response.Tenant.Families[service.FamilyInnosite] != 1 {
		t.Errorf("Expected one INNOSiTE contract, got %+v", response.Tenant.Families)
	}
	if response.Tenant.Nearest != "2026-03-31" {
		t.Errorf("Expected nearest expiry 2026-03-31, got %s", response.Tenant.Nearest)
	}

	tests := []struct {
		name   string
		target string
		scope  string
	}{
		{name: "unknown tenant", target: "/tenants/K-999999"},
		{name: "outside scope", target: "/tenants/K-000123", scope: "K-000456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, "GET", tt.target, tt.scope, nil)
			if w.Code != http.StatusNotFound {
				t.Errorf("Expected status 404, got %d", w.Code)
			}
		})
	}
}
