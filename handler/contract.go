package handler

import (
	"net/http"

	"github.com/TakeshiImakurusu/contract-management-system/middleware"
	"github.com/TakeshiImakurusu/contract-management-system/model"
	"github.com/TakeshiImakurusu/contract-management-system/service"
	"github.com/gin-gonic/gin"
)

// ContractHandler serves the read-only contract views. When an
// attachment store is configured it also hands out download URLs for
// contract documents; attachments is nil otherwise.
type ContractHandler struct {
	contracts   *service.ContractStore
	attachments *service.AttachmentStore
}

func NewContractHandler(contracts *service.ContractStore, attachments *service.AttachmentStore) *ContractHandler {
	return &ContractHandler{
		contracts:   contracts,
		attachments: attachments,
	}
}

// List returns contracts, optionally restricted to one tenant
func (h *ContractHandler) List(c *gin.Context) {
	scope := middleware.GetKentemScope(c)
	kentemID := c.Query("kentem_id")
	if scope != "" {
		kentemID = scope
	}

	var contracts []*model.Contract
	if kentemID != "" {
		contracts = h.contracts.ByKentemID(kentemID)
	} else {
		contracts = h.contracts.List()
	}

	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

// Get returns a single contract with its extras
func (h *ContractHandler) Get(c *gin.Context) {
	contract := h.visibleContract(c)
	if contract == nil {
		return
	}

	resp := gin.H{"contract": contract}
	if extras := h.contracts.Extras(contract.ID); extras != nil {
		resp["extras"] = extras
	}
	c.JSON(http.StatusOK, resp)
}

// Attachment returns a presigned download URL for a contract
// attachment. Only attachments listed in the contract's extras are
// served.
func (h *ContractHandler) Attachment(c *gin.Context) {
	contract := h.visibleContract(c)
	if contract == nil {
		return
	}

	if h.attachments == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment store not configured"})
		return
	}

	name := c.Param("name")
	extras := h.contracts.Extras(contract.ID)
	if extras == nil || !hasAttachment(extras, name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}

	url, err := h.attachments.PresignedURL(c.Request.Context(), contract.ID, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": name, "url": url})
}

func hasAttachment(extras *model.ContractExtras, name string) bool {
	for _, a := range extras.Attachments {
		if a.Name == name {
			return true
		}
	}
	return false
}

func (h *ContractHandler) visibleContract(c *gin.Context) *model.Contract {
	contract := h.contracts.Get(c.Param("id"))
	scope := middleware.GetKentemScope(c)
	if contract == nil || (scope != "" && contract.KentemID != scope) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return nil
	}
	return contract
}
