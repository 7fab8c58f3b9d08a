package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maplepath/api/internal/services"
)

type SettleHandler struct {
	svc services.SettleService
}

func NewSettleHandler(svc services.SettleService) *SettleHandler {
	return &SettleHandler{svc: svc}
}

func (h *SettleHandler) CreateRegion(c *gin.Context) {
	var req services.RegionInput
	if !bindJSON(c, "SettleHandler.CreateRegion", &req) {
		return
	}
	r, err := h.svc.CreateRegion(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *SettleHandler) ListRegions(c *gin.Context) {
	rows, err := h.svc.ListRegions(c.Request.Context(), queryInt(c, "skip", 0), queryInt(c, "limit", 0))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNilRows(rows))
}

func (h *SettleHandler) GetRegion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	r, err := h.svc.GetRegion(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *SettleHandler) UpdateRegion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.RegionInput
	if !bindJSON(c, "SettleHandler.UpdateRegion", &req) {
		return
	}
	r, err := h.svc.UpdateRegion(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *SettleHandler) DeleteRegion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteRegion(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Region deleted successfully"})
}

func (h *SettleHandler) ListRegionPurposes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.ListPurposesByRegion(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNilRows(rows))
}

func (h *SettleHandler) CreatePurpose(c *gin.Context) {
	var req services.PurposeInput
	if !bindJSON(c, "SettleHandler.CreatePurpose", &req) {
		return
	}
	p, err := h.svc.CreatePurpose(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *SettleHandler) ListPurposes(c *gin.Context) {
	rows, err := h.svc.ListPurposes(c.Request.Context(), queryInt(c, "skip", 0), queryInt(c, "limit", 0))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNilRows(rows))
}

func (h *SettleHandler) GetPurpose(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetPurpose(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *SettleHandler) UpdatePurpose(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.PurposeInput
	if !bindJSON(c, "SettleHandler.UpdatePurpose", &req) {
		return
	}
	p, err := h.svc.UpdatePurpose(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *SettleHandler) DeletePurpose(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePurpose(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Purpose deleted successfully"})
}

func (h *SettleHandler) CreateUserPurpose(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.UserPurposeInput
	if !bindJSON(c, "SettleHandler.CreateUserPurpose", &req) {
		return
	}
	up, err := h.svc.CreateUserPurpose(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, up)
}

func (h *SettleHandler) ListUserPurposes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.svc.ListUserPurposes(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNilRows(rows))
}

func (h *SettleHandler) GetUserPurpose(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	up, err := h.svc.GetUserPurpose(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}

func (h *SettleHandler) UpdateUserPurpose(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.UserPurposeInput
	if !bindJSON(c, "SettleHandler.UpdateUserPurpose", &req) {
		return
	}
	up, err := h.svc.UpdateUserPurpose(c.Request.Context(), userID, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}

func (h *SettleHandler) DeleteUserPurpose(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteUserPurpose(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User purpose deleted successfully"})
}

// nonNilRows keeps empty lists rendering as [] instead of null.
func nonNilRows[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
