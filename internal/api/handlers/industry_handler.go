package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maplepath/api/internal/services"
)

type IndustryHandler struct {
	svc services.IndustryService
}

func NewIndustryHandler(svc services.IndustryService) *IndustryHandler {
	return &IndustryHandler{svc: svc}
}

func (h *IndustryHandler) List(c *gin.Context) {
	rows, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *IndustryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ind, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ind)
}

func (h *IndustryHandler) Create(c *gin.Context) {
	var req services.IndustryInput
	if !bindJSON(c, "IndustryHandler.Create", &req) {
		return
	}
	ind, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ind)
}
