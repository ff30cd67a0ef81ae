package handler

import (
	"net/http"
	"strconv"
	"time"

	"jobcore/backend/internal/config"
	"jobcore/backend/internal/models"
	"jobcore/backend/internal/storage"
	"jobcore/backend/internal/vacancy"

	"github.com/gin-gonic/gin"
)

type createVacancyRequest struct {
	CompanyID              string               `json:"company_id" binding:"required,uuid"`
	CategoryID             string               `json:"category_id" binding:"required,uuid"`
	Title                  string               `json:"title" binding:"required,max=100"`
	Description            string               `json:"description" binding:"required"`
	RequirementsMustHave   string               `json:"requirements_must_have"`
	RequirementsNiceToHave string               `json:"requirements_nice_to_have"`
	ContractType           models.ContractType  `json:"contract_type"`
	WorkMode               models.WorkMode      `json:"work_mode"`
	PositionLevel          models.PositionLevel `json:"position_level"`
	Workload               models.Workload      `json:"workload"`
	Location               string               `json:"location"`
	SalaryFrom             *int                 `json:"salary_from"`
	SalaryTo               *int                 `json:"salary_to"`
	Tags                   []string             `json:"tags"`
}

func (h *Handler) CreateVacancy(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req createVacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Vacancies.Create(c.Request.Context(), a, vacancy.CreateRequest{
		CompanyID:              req.CompanyID,
		CategoryID:             req.CategoryID,
		Title:                  req.Title,
		Description:            req.Description,
		RequirementsMustHave:   req.RequirementsMustHave,
		RequirementsNiceToHave: req.RequirementsNiceToHave,
		ContractType:           req.ContractType,
		WorkMode:               req.WorkMode,
		PositionLevel:          req.PositionLevel,
		Workload:               req.Workload,
		Location:               req.Location,
		SalaryFrom:             req.SalaryFrom,
		SalaryTo:               req.SalaryTo,
		Tags:                   req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type updateVacancyRequest struct {
	CompanyID              string                `json:"company_id" binding:"required,uuid"`
	Title                  *string               `json:"title"`
	Description            *string               `json:"description"`
	RequirementsMustHave   *string               `json:"requirements_must_have"`
	RequirementsNiceToHave *string               `json:"requirements_nice_to_have"`
	ContractType           *models.ContractType  `json:"contract_type"`
	WorkMode               *models.WorkMode      `json:"work_mode"`
	PositionLevel          *models.PositionLevel `json:"position_level"`
	Workload               *models.Workload      `json:"workload"`
	Location               *string               `json:"location"`
	SalaryFrom             *int                  `json:"salary_from"`
	SalaryTo               *int                  `json:"salary_to"`
	Tags                   []string              `json:"tags"`
}

func (h *Handler) UpdateVacancy(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req updateVacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Vacancies.Update(c.Request.Context(), a, c.Param("id"), vacancy.UpdateRequest{
		CompanyID:              req.CompanyID,
		Title:                  req.Title,
		Description:            req.Description,
		RequirementsMustHave:   req.RequirementsMustHave,
		RequirementsNiceToHave: req.RequirementsNiceToHave,
		ContractType:           req.ContractType,
		WorkMode:               req.WorkMode,
		PositionLevel:          req.PositionLevel,
		Workload:               req.Workload,
		Location:               req.Location,
		SalaryFrom:             req.SalaryFrom,
		SalaryTo:               req.SalaryTo,
		Tags:                   req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteVacancy(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	companyID := c.Query("company_id")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
		return
	}
	if err := h.Vacancies.Delete(c.Request.Context(), a, c.Param("id"), companyID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetVacancy(c *gin.Context) {
	v, err := h.Vacancies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) ListVacancies(c *gin.Context) {
	page, size := pageParams(c, config.DefaultPageSize)

	filter := storage.VacancyFilter{
		TextSearch:    c.Query("q"),
		ContractType:  models.ContractType(c.Query("contract_type")),
		WorkMode:      models.WorkMode(c.Query("work_mode")),
		PositionLevel: models.PositionLevel(c.Query("position_level")),
		Workload:      models.Workload(c.Query("workload")),
	}
	if raw := c.Query("salary_from"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.SalaryFrom = &v
		}
	}
	if raw := c.Query("salary_to"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.SalaryTo = &v
		}
	}
	if raw := c.Query("uploaded_at"); raw != "" {
		if t, err := time.Parse(time.DateOnly, raw); err == nil {
			filter.UploadedAt = &t
		}
	}

	result, err := h.Vacancies.List(c.Request.Context(), filter, page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) CompanyVacancies(c *gin.Context) {
	page, size := pageParams(c, config.DefaultPageSize)

	result, err := h.Vacancies.CompanyVacancies(c.Request.Context(), c.Param("id"), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type companyCountsRequest struct {
	CompanyIDs []string `json:"company_ids" binding:"required,min=1"`
}

// CompanyVacancyCounts serves the directory service's preview cards.
func (h *Handler) CompanyVacancyCounts(c *gin.Context) {
	var req companyCountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	counts, err := h.Vacancies.CountForCompanies(c.Request.Context(), req.CompanyIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
