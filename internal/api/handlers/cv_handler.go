package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maplepath/api/internal/models"
	"github.com/maplepath/api/internal/services"
)

type CVHandler struct {
	svc services.CVService
}

func NewCVHandler(svc services.CVService) *CVHandler {
	return &CVHandler{svc: svc}
}

func (h *CVHandler) Generate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.CVRequest
	if !bindJSON(c, "CVHandler.Generate", &req) {
		return
	}

	out, err := h.svc.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CVHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ownedCV resolves the caller and the :id param together.
func ownedCV(c *gin.Context) (userID, cvID int64, ok bool) {
	if userID, ok = requireUserID(c); !ok {
		return 0, 0, false
	}
	if cvID, ok = parseID(c, "id"); !ok {
		return 0, 0, false
	}
	return userID, cvID, true
}

func (h *CVHandler) Get(c *gin.Context) {
	userID, cvID, ok := ownedCV(c)
	if !ok {
		return
	}

	cv, err := h.svc.Get(c.Request.Context(), userID, cvID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) Update(c *gin.Context) {
	userID, cvID, ok := ownedCV(c)
	if !ok {
		return
	}

	var req services.CVUpdate
	if !bindJSON(c, "CVHandler.Update", &req) {
		return
	}

	cv, err := h.svc.Update(c.Request.Context(), userID, cvID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) Delete(c *gin.Context) {
	userID, cvID, ok := ownedCV(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, cvID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CVHandler) ToggleFavorite(c *gin.Context) {
	userID, cvID, ok := ownedCV(c)
	if !ok {
		return
	}

	cv, err := h.svc.ToggleFavorite(c.Request.Context(), userID, cvID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) ExportPDF(c *gin.Context) {
	h.export(c, c.Query("format"))
}

type exportRequest struct {
	Format string `json:"format"`
}

func (h *CVHandler) Export(c *gin.Context) {
	var req exportRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, "CVHandler.Export", &req) {
		return
	}
	if strings.TrimSpace(req.Format) == "" {
		req.Format = models.FormatCanadian
	}
	h.export(c, req.Format)
}

func (h *CVHandler) export(c *gin.Context, format string) {
	userID, cvID, ok := ownedCV(c)
	if !ok {
		return
	}

	file, err := h.svc.Export(c.Request.Context(), userID, cvID, format)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *CVHandler) Publish(c *gin.Context) {
	userID, cvID, ok := ownedCV(c)
	if !ok {
		return
	}

	cv, err := h.svc.Publish(c.Request.Context(), userID, cvID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": cv.ID, "pdf_url": cv.PDFURL})
}

func (h *CVHandler) History(c *gin.Context) {
	userID, cvID, ok := ownedCV(c)
	if !ok {
		return
	}

	rows, err := h.svc.History(c.Request.Context(), userID, cvID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNilRows(rows))
}
