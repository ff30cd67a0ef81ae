// Package handler wires the HTTP boundary: request decoding, actor
// extraction and error-to-status mapping. Domain rules live in the services.
package handler

import (
	"net/http"
	"strconv"

	"jobcore/backend/internal/apperr"
	"jobcore/backend/internal/category"
	"jobcore/backend/internal/identity"
	"jobcore/backend/internal/report"
	"jobcore/backend/internal/vacancy"
	"jobcore/backend/internal/workflow"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Workflow   *workflow.Service
	Reports    *report.Service
	Vacancies  *vacancy.Service
	Categories *category.Service
}

func NewHandler(wf *workflow.Service, rp *report.Service, vc *vacancy.Service, ct *category.Service) *Handler {
	return &Handler{Workflow: wf, Reports: rp, Vacancies: vc, Categories: ct}
}

// actor pulls the resolved identity out of the gin context. The identity
// middleware guarantees it is present on protected routes.
func actor(c *gin.Context) (identity.Actor, bool) {
	a, ok := identity.ActorFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	}
	return a, ok
}

func pageParams(c *gin.Context, defaultSize int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil || size <= 0 || size > 100 {
		size = defaultSize
	}
	return page, size
}

// writeError maps the error taxonomy onto HTTP statuses and forwards any
// structured details payload to the caller.
func writeError(c *gin.Context, err error) {
	appErr := apperr.From(err)
	if appErr == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperr.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.CodeForbidden:
		status = http.StatusForbidden
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	case apperr.CodeValidation:
		status = http.StatusBadRequest
	case apperr.CodeConflict, apperr.CodeState:
		status = http.StatusConflict
	case apperr.CodeRateLimit:
		status = http.StatusTooManyRequests
	}

	body := gin.H{"error": appErr.Message, "code": appErr.Code}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	c.JSON(status, body)
}
