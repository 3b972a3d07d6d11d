package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/backend/internal/importer"
	"github.com/portfolio-site/backend/internal/response"
	"github.com/portfolio-site/backend/internal/service"
	"github.com/portfolio-site/backend/internal/validator"
)

// failWith maps a service error to its HTTP status and error code. Anything
// unrecognised is a storage failure and is attached to the context for logging.
func failWith(c *gin.Context, err error) {
	var pe *importer.ParseError

	switch {
	case errors.Is(err, service.ErrExamNotFound), errors.Is(err, service.ErrPostNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrExamPrivate):
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
	case errors.Is(err, service.ErrExamNotAvailable):
		response.Fail(c, http.StatusForbidden, response.ErrExamNotAvailable)
	case errors.Is(err, service.ErrExamExists), errors.Is(err, service.ErrPostExists):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrInvalidAnswers):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"answers": err.Error()})
	case errors.As(err, &pe):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrImportFailed, pe.Reason)
	case errors.Is(err, service.ErrInvalidPost), errors.Is(err, service.ErrUnknownImportFormat):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// bindJSON binds and validates the body, writing the 400 response on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if verr := validator.Bind(c, dst); verr != nil {
		response.FailWithFields(c, http.StatusBadRequest, verr.Code, verr.Fields)
		return false
	}
	return true
}
