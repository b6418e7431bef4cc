package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mwn/internal/domain"
)

func parseQueryInt64(value string) (int64, error) {
	return strconv.ParseInt(value, 10, 64)
}

// @Summary List doctors
// @Tags Doctors
// @Produce json
// @Param branch_id query int false "Filter by branch"
// @Param service query string false "Filter by offered service type"
// @Param available query bool false "Only available doctors"
// @Success 200 {array} domain.Doctor
// @Router /doctors [get]
func (h *Handler) getDoctors(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.DoctorFilter{
		Limit:  limit,
		Offset: offset,
	}

	if branchStr := c.DefaultQuery("branch_id", ""); branchStr != "" {
		if branchID, err := parseQueryInt64(branchStr); err == nil {
			filter.BranchID = &branchID
		}
	}

	if serviceStr := c.DefaultQuery("service", ""); serviceStr != "" {
		service := domain.ServiceType(serviceStr)
		if !service.Valid() {
			badRequestResponse(c, "unknown service type")
			return
		}
		filter.Service = &service
	}

	if availableStr := c.DefaultQuery("available", ""); availableStr != "" {
		available := availableStr == "true"
		filter.IsAvailable = &available
	}

	doctors, err := h.services.Doctor.List(c.Request.Context(), filter)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, doctors)
}

// @Summary Get doctor by id
// @Tags Doctors
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} domain.Doctor
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /doctors/{id} [get]
func (h *Handler) getDoctorByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid doctor id")
		return
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "doctor not found")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Create doctor
// @Tags Doctors
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateDoctorDTO true "Doctor data"
// @Success 201 {object} successResponseBody
// @Failure 400 {object} errorResponseBody "Validation error"
// @Router /doctors [post]
func (h *Handler) createDoctor(c *gin.Context) {
	var input domain.CreateDoctorDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	id, err := h.services.Doctor.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "branch not found")
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary Update doctor
// @Tags Doctors
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Doctor ID"
// @Param input body domain.UpdateDoctorDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /doctors/{id} [put]
func (h *Handler) updateDoctor(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid doctor id")
		return
	}

	var input domain.UpdateDoctorDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Doctor.Update(c.Request.Context(), id, input); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "doctor not found")
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "doctor updated")
}
