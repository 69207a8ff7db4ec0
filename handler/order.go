package handler

import (
	"errors"
	"net/http"

	"github.com/TakeshiImakurusu/contract-management-system/middleware"
	"github.com/TakeshiImakurusu/contract-management-system/model"
	"github.com/TakeshiImakurusu/contract-management-system/service"
	"github.com/gin-gonic/gin"
)

// OrderHandler serves the order listing and the workflow actions the
// dashboard's buttons map to.
type OrderHandler struct {
	orders    *service.OrderStore
	contracts *service.ContractStore
	drafts    *service.DraftStore
	workflow  *service.Workflow
}

func NewOrderHandler(orders *service.OrderStore, contracts *service.ContractStore, drafts *service.DraftStore, workflow *service.Workflow) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		contracts: contracts,
		drafts:    drafts,
		workflow:  workflow,
	}
}

// List returns orders for one dashboard tab, filtered and sorted the
// way the dashboard presents them
func (h *OrderHandler) List(c *gin.Context) {
	tab := service.Tab(c.DefaultQuery("tab", string(service.TabOrders)))
	if !service.ValidTab(tab) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tab"})
		return
	}

	status := model.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	orders := h.orders.Filter(service.OrderFilter{
		Tab:      tab,
		Keyword:  c.Query("q"),
		KentemID: c.Query("kentem_id"),
		Status:   status,
		Scope:    middleware.GetKentemScope(c),
	})

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Counts returns the tab badge numbers: per-tab order counts plus the
// number of tenants with contracts
func (h *OrderHandler) Counts(c *gin.Context) {
	scope := middleware.GetKentemScope(c)
	counts := h.orders.TabCounts(scope)

	c.JSON(http.StatusOK, gin.H{
		"orders":     counts[service.TabOrders],
		"processing": counts[service.TabProcessing],
		"confirmed":  counts[service.TabConfirmed],
		"tenants":    h.contracts.KentemIDCount(scope),
	})
}

// Get returns a single order with its draft, if any
func (h *OrderHandler) Get(c *gin.Context) {
	order := h.visibleOrder(c)
	if order == nil {
		return
	}

	resp := gin.H{"order": order}
	if draft := h.drafts.Get(order.ID); draft != nil {
		resp["draft"] = draft
	}
	c.JSON(http.StatusOK, resp)
}

type AssignRequest struct {
	Assignee string `json:"assignee" binding:"required"`
}

// Assign sets the order's assignee, advancing received orders to
// triaged
func (h *OrderHandler) Assign(c *gin.Context) {
	order := h.visibleOrder(c)
	if order == nil {
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	h.runTransition(c, order.ID, func() error {
		return h.workflow.Assign(order.ID, req.Assignee)
	})
}

// Validate marks the order as validating
func (h *OrderHandler) Validate(c *gin.Context) {
	order := h.visibleOrder(c)
	if order == nil {
		return
	}
	h.runTransition(c, order.ID, func() error {
		return h.workflow.Validate(order.ID)
	})
}

// Submit submits the order's draft for approval
func (h *OrderHandler) Submit(c *gin.Context) {
	order := h.visibleOrder(c)
	if order == nil {
		return
	}
	h.runTransition(c, order.ID, func() error {
		return h.workflow.SubmitForApproval(order.ID)
	})
}

// Approve approves a submitted draft
func (h *OrderHandler) Approve(c *gin.Context) {
	order := h.visibleOrder(c)
	if order == nil {
		return
	}
	h.runTransition(c, order.ID, func() error {
		return h.workflow.Approve(order.ID)
	})
}

// Post posts an approved draft. Terminal.
func (h *OrderHandler) Post(c *gin.Context) {
	order := h.visibleOrder(c)
	if order == nil {
		return
	}
	h.runTransition(c, order.ID, func() error {
		return h.workflow.Post(order.ID)
	})
}

// SendBack returns the order to needs_fix and resets its draft
func (h *OrderHandler) SendBack(c *gin.Context) {
	order := h.visibleOrder(c)
	if order == nil {
		return
	}
	h.runTransition(c, order.ID, func() error {
		return h.workflow.SendBack(order.ID)
	})
}

// visibleOrder resolves the :id parameter, enforcing the operator's
// tenant scope. Writes the error response and returns nil when the
// order is not visible.
func (h *OrderHandler) visibleOrder(c *gin.Context) *model.Order {
	order := h.orders.Get(c.Param("id"))
	scope := middleware.GetKentemScope(c)
	if order == nil || (scope != "" && order.KentemID != scope) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil
	}
	return order
}

// runTransition executes a workflow operation and renders the updated
// order and draft, mapping guard failures to 409. The failed guards
// correspond to buttons the dashboard renders disabled.
func (h *OrderHandler) runTransition(c *gin.Context, orderID string, op func() error) {
	if err := op(); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, service.ErrDraftNotFound), errors.Is(err, service.ErrDraftEmpty),
			errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Transition failed"})
		}
		return
	}

	resp := gin.H{"order": h.orders.Get(orderID)}
	if draft := h.drafts.Get(orderID); draft != nil {
		resp["draft"] = draft
	}
	c.JSON(http.StatusOK, resp)
}
