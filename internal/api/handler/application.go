package handler

import (
	"net/http"
	"strconv"

	"jobcore/backend/internal/clients"
	"jobcore/backend/internal/config"
	"jobcore/backend/internal/models"
	"jobcore/backend/internal/workflow"

	"github.com/gin-gonic/gin"
)

type applyRequest struct {
	VacancyID   string `json:"vacancy_id" binding:"required,uuid"`
	CVID        string `json:"cv_id" binding:"required,uuid"`
	CoverLetter string `json:"cover_letter"`
}

func (h *Handler) Apply(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := h.Workflow.Apply(c.Request.Context(), a, workflow.ApplyRequest{
		VacancyID:   req.VacancyID,
		CVID:        req.CVID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

type changeStatusRequest struct {
	Status models.SystemStatus `json:"status" binding:"required"`
}

func (h *Handler) ChangeApplicationStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Workflow.ChangeStatus(c.Request.Context(), a, c.Param("id"), req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ApplicationDetails(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	application, err := h.Workflow.Details(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *Handler) VacancyApplications(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	page, size := pageParams(c, config.DefaultPageSize)
	hours, _ := strconv.Atoi(c.Query("available_hours_per_week"))

	result, err := h.Workflow.ApplicationsForVacancy(
		c.Request.Context(), a,
		c.Param("id"),
		models.SystemStatus(c.Query("status")),
		clients.CandidateFilter{
			Salary:                c.Query("salary"),
			WorkMode:              c.Query("work_mode"),
			AvailableHoursPerWeek: hours,
			AvailableFrom:         c.Query("available_from"),
		},
		page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) MyApplications(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	page, size := pageParams(c, config.DefaultPageSize)

	result, err := h.Workflow.MyApplications(c.Request.Context(), a, page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ApplicationChatStatus is consumed by the chat service to decide whether a
// conversation may be opened for an application.
func (h *Handler) ApplicationChatStatus(c *gin.Context) {
	open, err := h.Workflow.OpenForChat(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"open": open})
}
