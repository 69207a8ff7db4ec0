package handler

import (
	"net/http"

	"github.com/TakeshiImakurusu/contract-management-system/middleware"
	"github.com/TakeshiImakurusu/contract-management-system/service"
	"github.com/gin-gonic/gin"
)

// TenantHandler serves the tenant view: contracts grouped per KENTEM ID
// with family counts and nearest expiry.
type TenantHandler struct {
	contracts *service.ContractStore
}

func NewTenantHandler(contracts *service.ContractStore) *TenantHandler {
	return &TenantHandler{contracts: contracts}
}

// List returns tenant summaries sorted by nearest contract expiry
func (h *TenantHandler) List(c *gin.Context) {
	summaries := service.BuildTenantSummaries(h.contracts.List(), service.TenantFilter{
		Keyword:  c.Query("q"),
		KentemID: c.Query("kentem_id"),
		Scope:    middleware.GetKentemScope(c),
	})

	c.JSON(http.StatusOK, gin.H{"tenants": summaries})
}

// Get returns one tenant's summary
func (h *TenantHandler) Get(c *gin.Context) {
	kentemID := c.Param("kentemId")
	scope := middleware.GetKentemScope(c)
	if scope != "" && kentemID != scope {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	summaries := service.BuildTenantSummaries(h.contracts.List(), service.TenantFilter{Scope: kentemID})
	if len(summaries) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenant": summaries[0]})
}
