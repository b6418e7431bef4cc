package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mwn/internal/domain"
)

// @Summary Attach lab report metadata
// @Description Stores report metadata; the file itself lives behind the given URL
// @Tags Records
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param input body domain.CreateLabReportDTO true "Report metadata"
// @Success 201 {object} successResponseBody
// @Failure 400 {object} errorResponseBody "Validation error"
// @Router /patients/{id}/lab-reports [post]
func (h *Handler) addLabReport(c *gin.Context) {
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid patient id")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateLabReportDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}
	input.PatientID = patientID

	id, err := h.services.Record.AddLabReport(c.Request.Context(), userID, input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary List patient lab reports
// @Tags Records
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {array} domain.LabReport
// @Router /patients/{id}/lab-reports [get]
func (h *Handler) getPatientLabReports(c *gin.Context) {
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid patient id")
		return
	}

	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if !domain.CanViewMedicalHistory(role) {
		forbiddenResponse(c)
		return
	}

	reports, err := h.services.Record.ListLabReports(c.Request.Context(), patientID)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, reports)
}

// @Summary Add consultation note
// @Description Attaches clinical notes to an appointment; cancelled appointments are rejected
// @Tags Records
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param input body domain.CreateConsultationNoteDTO true "Note data"
// @Success 201 {object} successResponseBody
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /appointments/{id}/notes [post]
func (h *Handler) addConsultationNote(c *gin.Context) {
	appointmentID, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid appointment id")
		return
	}

	var input domain.CreateConsultationNoteDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}
	input.AppointmentID = appointmentID

	id, err := h.services.Record.AddConsultationNote(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "appointment not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			conflictResponse(c, "cannot attach notes to a cancelled appointment")
		default:
			internalServerErrorResponse(c)
		}
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary List patient consultation notes
// @Tags Records
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {array} domain.ConsultationNote
// @Router /patients/{id}/notes [get]
func (h *Handler) getPatientNotes(c *gin.Context) {
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid patient id")
		return
	}

	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if !domain.CanViewMedicalHistory(role) {
		forbiddenResponse(c)
		return
	}

	notes, err := h.services.Record.ListConsultationNotes(c.Request.Context(), patientID)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, notes)
}
