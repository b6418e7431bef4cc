package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mwn/internal/domain"
)

// @Summary List wellness packages
// @Tags Packages
// @Produce json
// @Param service_type query string false "Filter by service type"
// @Param active query bool false "Only active packages"
// @Success 200 {array} domain.WellnessPackage
// @Router /packages [get]
func (h *Handler) getPackages(c *gin.Context) {
	limit, offset := parsePagination(c)

	filter := domain.PackageFilter{
		ActiveOnly: c.DefaultQuery("active", "") == "true",
		Limit:      limit,
		Offset:     offset,
	}

	if serviceStr := c.DefaultQuery("service_type", ""); serviceStr != "" {
		service := domain.ServiceType(serviceStr)
		if !service.Valid() {
			badRequestResponse(c, "unknown service type")
			return
		}
		filter.ServiceType = &service
	}

	packages, err := h.services.Package.List(c.Request.Context(), filter)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, packages)
}

// @Summary Get package by id
// @Tags Packages
// @Produce json
// @Param id path int true "Package ID"
// @Success 200 {object} domain.WellnessPackage
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /packages/{id} [get]
func (h *Handler) getPackageByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid package id")
		return
	}

	pkg, err := h.services.Package.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "package not found")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, pkg)
}

// @Summary Create wellness package
// @Tags Packages
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreatePackageDTO true "Package data"
// @Success 201 {object} successResponseBody
// @Failure 400 {object} errorResponseBody "Validation error"
// @Router /packages [post]
func (h *Handler) createPackage(c *gin.Context) {
	var input domain.CreatePackageDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	id, err := h.services.Package.Create(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary Update wellness package
// @Tags Packages
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Package ID"
// @Param input body domain.UpdatePackageDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /packages/{id} [put]
func (h *Handler) updatePackage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid package id")
		return
	}

	var input domain.UpdatePackageDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Package.Update(c.Request.Context(), id, input); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "package not found")
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "package updated")
}
