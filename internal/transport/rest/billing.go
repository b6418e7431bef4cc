package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mwn/internal/domain"
)

// @Summary Purchase a wellness package
// @Description Prices the purchase with package, membership and tax stages and records a pending invoice
// @Tags Billing
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.PurchasePackageDTO true "Purchase data"
// @Success 201 {object} domain.Bill
// @Failure 400 {object} errorResponseBody "Validation error"
// @Router /billing/packages [post]
func (h *Handler) purchasePackage(c *gin.Context) {
	var input domain.PurchasePackageDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	bill, err := h.services.Billing.PurchasePackage(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "patient or package not found")
		case errors.Is(err, domain.ErrPackageInactive),
			errors.Is(err, domain.ErrSessionLimit),
			errors.Is(err, domain.ErrInvalidQuantity),
			errors.Is(err, domain.ErrInvalidRate):
			badRequestResponse(c, err.Error())
		default:
			internalServerErrorResponse(c)
		}
		return
	}

	createdResponse(c, bill)
}

// @Summary Invoice a consultation
// @Description Bills a single appointment at the doctor's consultation fee
// @Tags Billing
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.BillAppointmentDTO true "Appointment reference"
// @Success 201 {object} domain.Bill
// @Failure 404 {object} errorResponseBody "Not found"
// @Failure 409 {object} errorResponseBody "Appointment not billable"
// @Router /billing/appointments [post]
func (h *Handler) billAppointment(c *gin.Context) {
	var input domain.BillAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	bill, err := h.services.Billing.BillAppointment(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "appointment not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			conflictResponse(c, "appointment is not billable in its current status")
		default:
			errorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	createdResponse(c, bill)
}

// @Summary Get bill by id
// @Tags Billing
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Bill ID"
// @Success 200 {object} domain.Bill
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /billing/{id} [get]
func (h *Handler) getBillByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid bill id")
		return
	}

	bill, err := h.services.Billing.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "bill not found")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, bill)
}

type billStatusRequest struct {
	Status domain.PaymentStatus `json:"status" binding:"required,oneof=paid void refunded"`
}

// @Summary Update payment status
// @Description Moves a bill through the payment state machine
// @Tags Billing
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Bill ID"
// @Param input body billStatusRequest true "Target status"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Not found"
// @Failure 409 {object} errorResponseBody "Transition not allowed"
// @Router /billing/{id}/status [put]
func (h *Handler) updateBillStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid bill id")
		return
	}

	var input billStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Billing.UpdateStatus(c.Request.Context(), id, input.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "bill not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			conflictResponse(c, err.Error())
		default:
			internalServerErrorResponse(c)
		}
		return
	}

	messageResponse(c, http.StatusOK, "payment status updated")
}

// @Summary List bills
// @Tags Billing
// @Security ApiKeyAuth
// @Produce json
// @Param patient_id query int false "Filter by patient"
// @Param package_id query int false "Filter by package"
// @Param status query string false "Filter by payment status"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} paginatedResponse
// @Router /billing [get]
func (h *Handler) getBills(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.BillFilter{
		Limit:  limit,
		Offset: offset,
	}

	if v := c.DefaultQuery("patient_id", ""); v != "" {
		if id, err := parseQueryInt64(v); err == nil {
			filter.PatientID = &id
		}
	}
	if v := c.DefaultQuery("package_id", ""); v != "" {
		if id, err := parseQueryInt64(v); err == nil {
			filter.PackageID = &id
		}
	}
	if v := c.DefaultQuery("status", ""); v != "" {
		status := domain.PaymentStatus(v)
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

	bills, total, err := h.services.Billing.List(c.Request.Context(), filter)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, bills, total, page, limit)
}

// @Summary Revenue summary
// @Description Paid and pending totals plus collected tax across all invoices
// @Tags Billing
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.RevenueSummary
// @Router /billing/summary [get]
func (h *Handler) getRevenueSummary(c *gin.Context) {
	summary, err := h.services.Billing.RevenueSummary(c.Request.Context())
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, summary)
}

// @Summary Income by package
// @Tags Billing
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} domain.PackageIncome
// @Router /billing/package-income [get]
func (h *Handler) getPackageIncome(c *gin.Context) {
	incomes, err := h.services.Billing.IncomeByPackage(c.Request.Context())
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, incomes)
}
