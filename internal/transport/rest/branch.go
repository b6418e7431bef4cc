package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mwn/internal/domain"
)

// @Summary List branches
// @Tags Branches
// @Produce json
// @Success 200 {array} domain.Branch
// @Router /branches [get]
func (h *Handler) getBranches(c *gin.Context) {
	branches, err := h.services.Branch.List(c.Request.Context())
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, branches)
}

// @Summary Get branch by id
// @Tags Branches
// @Produce json
// @Param id path int true "Branch ID"
// @Success 200 {object} domain.Branch
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /branches/{id} [get]
func (h *Handler) getBranchByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid branch id")
		return
	}

	branch, err := h.services.Branch.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "branch not found")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, branch)
}

// @Summary Create branch
// @Description Registers a clinic location; the single-letter code goes into booking tokens
// @Tags Branches
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateBranchDTO true "Branch data"
// @Success 201 {object} successResponseBody
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 409 {object} errorResponseBody "Code already in use"
// @Router /branches [post]
func (h *Handler) createBranch(c *gin.Context) {
	var input domain.CreateBranchDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	id, err := h.services.Branch.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateBranchCode) {
			conflictResponse(c, err.Error())
			return
		}
		internalServerErrorResponse(c)
		return
	}

	createdResponse(c, map[string]interface{}{"id": id})
}

// @Summary Update branch
// @Tags Branches
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Branch ID"
// @Param input body domain.UpdateBranchDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Not found"
// @Router /branches/{id} [put]
func (h *Handler) updateBranch(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		badRequestResponse(c, "invalid branch id")
		return
	}

	var input domain.UpdateBranchDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Branch.Update(c.Request.Context(), id, input); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "branch not found")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "branch updated")
}
