package v1

import (
	"net/http"

	"github.com/asejik/invoice-aso-oke/internal/api/dto"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/service"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service service.ProfileService
	log     *logger.Logger
}

func NewProfileHandler(service service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, log: log}
}

// UpdateProfile replaces the business profile. There is only ever one
// profile record, so this is a PUT regardless of prior state.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to update profile", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	resp, err := h.service.GetProfile(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to get profile", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
