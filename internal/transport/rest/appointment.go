package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mwn/internal/domain"
)

// @Summary Book an appointment
// @Description Validates doctor availability, specialization and slot, then mints a booking token
// @Tags Appointments
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Booking data"
// @Success 201 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 409 {object} errorResponseBody "Slot already booked"
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	var input domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	appt, err := h.services.Appointment.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotConflict):
			conflictResponse(c, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "patient, doctor or branch not found")
		case errors.Is(err, domain.ErrIncompleteRequest),
			errors.Is(err, domain.ErrDoctorUnavailable),
			errors.Is(err, domain.ErrSpecializationMatch),
			errors.Is(err, domain.ErrBranchMismatch):
			badRequestResponse(c, err.Error())
		default:
			internalServerErrorResponse(c)
		}
		return
	}

	createdResponse(c, appt)
}

// @Summary Daily slot availability
// @Description Returns the 16-slot daily template for a doctor with availability flags
// @Tags Appointments
// @Security ApiKeyAuth
// @Produce json
// @Param doctor_id query int true "Doctor ID"
// @Param branch_id query int true "Branch ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} domain.TimeSlot
// @Failure 400 {object} errorResponseBody "Validation error"
// @Router /appointments/slots [get]
func (h *Handler) getSlots(c *gin.Context) {
	doctorID, err := parseQueryInt64(c.Query("doctor_id"))
	if err != nil {
		badRequestResponse(c, "invalid doctor_id")
		return
	}

	branchID, err := parseQueryInt64(c.Query("branch_id"))
	if err != nil {
		badRequestResponse(c, "invalid branch_id")
		return
	}

	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "date is required")
		return
	}

	slots, err := h.services.Appointment.Slots(c.Request.Context(), doctorID, branchID, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "doctor not found")
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Get appointment by id
// @Tags Appointments
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid appointment id")
		return
	}

	appt, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "appointment not found")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, appt)
}

// @Summary List appointments
// @Tags Appointments
// @Security ApiKeyAuth
// @Produce json
// @Param patient_id query int false "Filter by patient"
// @Param doctor_id query int false "Filter by doctor"
// @Param branch_id query int false "Filter by branch"
// @Param status query string false "Filter by status"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} paginatedResponse
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.AppointmentFilter{
		Limit:  limit,
		Offset: offset,
	}

	if v := c.DefaultQuery("patient_id", ""); v != "" {
		if id, err := parseQueryInt64(v); err == nil {
			filter.PatientID = &id
		}
	}
	if v := c.DefaultQuery("doctor_id", ""); v != "" {
		if id, err := parseQueryInt64(v); err == nil {
			filter.DoctorID = &id
		}
	}
	if v := c.DefaultQuery("branch_id", ""); v != "" {
		if id, err := parseQueryInt64(v); err == nil {
			filter.BranchID = &id
		}
	}
	if v := c.DefaultQuery("status", ""); v != "" {
		status := domain.AppointmentStatus(v)
		filter.Status = &status
	}
	if v := c.DefaultQuery("date_from", ""); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &parsed
		}
	}
	if v := c.DefaultQuery("date_to", ""); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			end := parsed.Add(24*time.Hour - time.Second)
			filter.EndDate = &end
		}
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, appointments, total, page, limit)
}

// @Summary Cancel appointment
// @Description Frees the slot; the booking token is never reused
// @Tags Appointments
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Not found"
// @Failure 409 {object} errorResponseBody "Transition not allowed"
// @Router /appointments/{id} [delete]
func (h *Handler) cancelAppointment(c *gin.Context) {
	h.transitionAppointment(c, h.services.Appointment.Cancel, "appointment cancelled")
}

// @Summary Complete appointment
// @Tags Appointments
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Not found"
// @Failure 409 {object} errorResponseBody "Transition not allowed"
// @Router /appointments/{id}/complete [post]
func (h *Handler) completeAppointment(c *gin.Context) {
	h.transitionAppointment(c, h.services.Appointment.Complete, "appointment completed")
}

func (h *Handler) transitionAppointment(c *gin.Context, op func(ctx context.Context, id int64) error, message string) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid appointment id")
		return
	}

	if err := op(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "appointment not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			conflictResponse(c, err.Error())
		default:
			internalServerErrorResponse(c)
		}
		return
	}

	messageResponse(c, http.StatusOK, message)
}

type rescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// @Summary Reschedule appointment
// @Description Cancels the appointment and books a replacement with a fresh token
// @Tags Appointments
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param input body rescheduleRequest true "New date and time"
// @Success 201 {object} domain.Appointment
// @Failure 404 {object} errorResponseBody "Not found"
// @Failure 409 {object} errorResponseBody "Slot already booked"
// @Router /appointments/{id}/reschedule [post]
func (h *Handler) rescheduleAppointment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid appointment id")
		return
	}

	var input rescheduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	appt, err := h.services.Appointment.Reschedule(c.Request.Context(), id, input.Date, input.Time)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "appointment not found")
		case errors.Is(err, domain.ErrSlotConflict), errors.Is(err, domain.ErrInvalidTransition):
			conflictResponse(c, err.Error())
		case errors.Is(err, domain.ErrIncompleteRequest):
			badRequestResponse(c, err.Error())
		default:
			internalServerErrorResponse(c)
		}
		return
	}

	createdResponse(c, appt)
}
