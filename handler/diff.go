package handler

import (
	"errors"
	"net/http"

	"github.com/TakeshiImakurusu/contract-management-system/middleware"
	"github.com/TakeshiImakurusu/contract-management-system/model"
	"github.com/TakeshiImakurusu/contract-management-system/service"
	"github.com/gin-gonic/gin"
)

// DiffHandler serves the order-vs-contract comparison dialog: the diff
// rows, the preselected lines, and draft saves.
type DiffHandler struct {
	orders    *service.OrderStore
	contracts *service.ContractStore
	drafts    *service.DraftStore
	builder   *service.DraftBuilder
}

func NewDiffHandler(orders *service.OrderStore, contracts *service.ContractStore, drafts *service.DraftStore, builder *service.DraftBuilder) *DiffHandler {
	return &DiffHandler{
		orders:    orders,
		contracts: contracts,
		drafts:    drafts,
		builder:   builder,
	}
}

// Diff compares the order against one of its tenant's contracts. The
// contract_id query picks the target; it defaults to the tenant's
// first contract, mirroring the dialog's initial selection.
func (h *DiffHandler) Diff(c *gin.Context) {
	order, ok := h.resolveOrder(c)
	if !ok {
		return
	}

	candidates := h.contracts.ByKentemID(order.KentemID)
	if len(candidates) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant has no contracts to compare against"})
		return
	}

	target := candidates[0]
	if id := c.Query("contract_id"); id != "" {
		target = nil
		for _, candidate := range candidates {
			if candidate.ID == id {
				target = candidate
				break
			}
		}
		if target == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found for this tenant"})
			return
		}
	}

	rows := service.CompareLines(order, target)
	selection := service.DefaultSelection(rows, h.drafts.Get(order.ID))

	c.JSON(http.StatusOK, gin.H{
		"contract":  target,
		"rows":      rows,
		"selection": selection,
	})
}

type SaveDraftRequest struct {
	ContractID string          `json:"contract_id"`
	Keys       []model.LineKey `json:"keys" binding:"required"`
}

// SaveDraft creates or replaces the order's draft from the selected
// line keys
func (h *DiffHandler) SaveDraft(c *gin.Context) {
	order, ok := h.resolveOrder(c)
	if !ok {
		return
	}

	var req SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.ContractID != "" {
		contract := h.contracts.Get(req.ContractID)
		if contract == nil || contract.KentemID != order.KentemID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found for this tenant"})
			return
		}
	}

	draft, err := h.builder.SaveFromSelection(order.ID, req.ContractID, req.Keys)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, service.ErrDraftEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Selection matches no order lines"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// GetDraft returns the order's draft
func (h *DiffHandler) GetDraft(c *gin.Context) {
	order, ok := h.resolveOrder(c)
	if !ok {
		return
	}

	draft := h.drafts.Get(order.ID)
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *DiffHandler) resolveOrder(c *gin.Context) (*model.Order, bool) {
	order := h.orders.Get(c.Param("id"))
	scope := middleware.GetKentemScope(c)
	if order == nil || (scope != "" && order.KentemID != scope) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, false
	}
	return order, true
}
