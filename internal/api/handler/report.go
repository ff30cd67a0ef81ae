package handler

import (
	"net/http"

	"jobcore/backend/internal/config"
	"jobcore/backend/internal/models"
	"jobcore/backend/internal/report"

	"github.com/gin-gonic/gin"
)

type submitReportRequest struct {
	VacancyID string              `json:"vacancy_id" binding:"required,uuid"`
	Reason    models.ReportReason `json:"reason" binding:"required"`
	Comment   string              `json:"comment"`
}

func (h *Handler) SubmitReport(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Reports.Submit(c.Request.Context(), a, report.SubmitRequest{
		VacancyID: req.VacancyID,
		Reason:    req.Reason,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type resolveReportRequest struct {
	Status models.SystemStatus `json:"status" binding:"required"`
}

func (h *Handler) ResolveReport(c *gin.Context) {
	if _, ok := actor(c); !ok {
		return
	}
	var req resolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Reports.Resolve(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListReports(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	page, size := pageParams(c, config.DefaultPageSize)

	result, err := h.Reports.Reports(c.Request.Context(), a, models.SystemStatus(c.Query("status")), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) MyReports(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	page, size := pageParams(c, config.DefaultPageSize)

	result, err := h.Reports.MyReports(c.Request.Context(), a, page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetReport(c *gin.Context) {
	if _, ok := actor(c); !ok {
		return
	}
	r, err := h.Reports.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
