package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/backend/internal/response"
	"github.com/portfolio-site/backend/internal/service"
)

// ImportHandler handles bulk exam imports from pasted text or HTML.
type ImportHandler struct {
	importService *service.ImportService
}

func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

type importExamRequest struct {
	Content string `json:"content" binding:"required,max=2097152"`
	// Save stores the parsed exam instead of only returning the draft.
	Save bool `json:"save"`
}

// ImportText godoc
// POST /api/v1/admin/exams/import/text
func (h *ImportHandler) ImportText(c *gin.Context) {
	h.importAs(c, service.ImportFormatText)
}

// ImportHTML godoc
// POST /api/v1/admin/exams/import/html
func (h *ImportHandler) ImportHTML(c *gin.Context) {
	h.importAs(c, service.ImportFormatHTML)
}

func (h *ImportHandler) importAs(c *gin.Context, format string) {
	var req importExamRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.importService.Import(c.Request.Context(), format, req.Content, req.Save)
	if err != nil {
		failWith(c, err)
		return
	}

	status := http.StatusOK
	if res.Exam != nil {
		status = http.StatusCreated
	}
	response.Success(c, status, res)
}
