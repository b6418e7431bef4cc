package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mwn/internal/domain"
)

// @Summary List patients
// @Description Medical history and allergies are stripped for roles without clinical access
// @Tags Patients
// @Security ApiKeyAuth
// @Produce json
// @Param membership_tier query string false "Filter by membership tier"
// @Param search query string false "Search by name or phone"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} paginatedResponse
// @Router /patients [get]
func (h *Handler) getPatients(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.PatientFilter{
		Search: c.DefaultQuery("search", ""),
		Limit:  limit,
		Offset: offset,
	}

	if tierStr := c.DefaultQuery("membership_tier", ""); tierStr != "" {
		tier := domain.MembershipTier(tierStr)
		filter.MembershipTier = &tier
	}

	patients, total, err := h.services.Patient.List(c.Request.Context(), filter)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	role, _ := getUserRole(c)
	if !domain.CanViewMedicalHistory(role) {
		for i := range patients {
			patients[i] = patients[i].Redacted()
		}
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, patients, total, page, limit)
}

// @Summary Get patient by id
// @Tags Patients
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} domain.Patient
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /patients/{id} [get]
func (h *Handler) getPatientByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid patient id")
		return
	}

	patient, err := h.services.Patient.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "patient not found")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	role, _ := getUserRole(c)
	if !domain.CanViewMedicalHistory(role) {
		redacted := patient.Redacted()
		successResponse(c, http.StatusOK, redacted)
		return
	}

	successResponse(c, http.StatusOK, patient)
}

// @Summary Create patient
// @Tags Patients
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreatePatientDTO true "Patient data"
// @Success 201 {object} successResponseBody
// @Failure 400 {object} errorResponseBody "Validation error"
// @Router /patients [post]
func (h *Handler) createPatient(c *gin.Context) {
	var input domain.CreatePatientDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	id, err := h.services.Patient.Create(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary Update patient
// @Tags Patients
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param input body domain.UpdatePatientDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /patients/{id} [put]
func (h *Handler) updatePatient(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid patient id")
		return
	}

	var input domain.UpdatePatientDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Patient.Update(c.Request.Context(), id, input); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "patient not found")
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "patient updated")
}
