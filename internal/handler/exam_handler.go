package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/backend/internal/exam"
	"github.com/portfolio-site/backend/internal/middleware"
	"github.com/portfolio-site/backend/internal/model"
	"github.com/portfolio-site/backend/internal/response"
	"github.com/portfolio-site/backend/internal/service"
)

// ExamHandler handles exam endpoints, public and admin.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// ListExams godoc
// GET /api/v1/exams
// GET /api/v1/admin/exams?all=true
// Lists exam summaries. Private exams are included only for admins asking for all.
func (h *ExamHandler) ListExams(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	includePrivate := all && middleware.IsAdmin(c)

	exams, err := h.examService.List(c.Request.Context(), includePrivate)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// GetExam godoc
// GET /api/v1/exams/:id
// Admins get the full exam and its retained results; everyone else gets
// the exam without answers, provided it is public.
func (h *ExamHandler) GetExam(c *gin.Context) {
	view, err := h.examService.GetForViewer(c.Request.Context(), c.Param("id"), middleware.IsAdmin(c))
	if err != nil {
		failWith(c, err)
		return
	}

	if view.Access == exam.AccessFull {
		response.Success(c, http.StatusOK, model.AdminExamView{Exam: view.Exam, Results: view.Results})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": view.Public})
}

// SubmitExam godoc
// POST /api/v1/exams/:id/submit
// Scores the submitted answers and returns the result with the answer key.
// A missing or private exam is rejected before the body is read.
func (h *ExamHandler) SubmitExam(c *gin.Context) {
	e, err := h.examService.OpenForSubmission(c.Request.Context(), c.Param("id"))
	if err != nil {
		failWith(c, err)
		return
	}

	var req model.SubmitExamRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.examService.SubmitTo(c.Request.Context(), e, req.Answers)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// CreateExam godoc
// POST /api/v1/admin/exams
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.examService.Create(c.Request.Context(), &req)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": e})
}

// UpdateExam godoc
// PUT /api/v1/admin/exams/:id
// Applies a partial update; absent fields keep their value.
func (h *ExamHandler) UpdateExam(c *gin.Context) {
	var req model.UpdateExamRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.examService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": e})
}

// ToggleExam godoc
// PATCH /api/v1/admin/exams/:id
// Flips the exam between public and private.
func (h *ExamHandler) ToggleExam(c *gin.Context) {
	e, err := h.examService.TogglePublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": e.Summary()})
}

// DeleteExam godoc
// DELETE /api/v1/admin/exams/:id
// Deletes the exam together with its stored results.
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	if err := h.examService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// GetExamResults godoc
// GET /api/v1/admin/exams/:id/results
func (h *ExamHandler) GetExamResults(c *gin.Context) {
	results, err := h.examService.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}
