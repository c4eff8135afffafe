package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/chleo-smith/consent-gateway/internal/errors"
	"github.com/chleo-smith/consent-gateway/internal/service"
)

type updateConsentReq struct {
	Status     string `json:"status" validate:"required,consentstatus"`
	StatusType string `json:"statusType" validate:"required,consentstatustype"`
}

type successEnvelope struct {
	Success bool   `json:"success"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// ConsentHandler is http handler for customer and consent endpoints
type ConsentHandler struct {
	consentSvc service.ConsentService
}

// NewConsentHandler builds new ConsentHandler
func NewConsentHandler(consentSvc service.ConsentService) *ConsentHandler {
	return &ConsentHandler{consentSvc: consentSvc}
}

// GetCustomer looks up a customer by national id
func (h *ConsentHandler) GetCustomer(c echo.Context) error {
	res, err := h.consentSvc.CustomerByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &successEnvelope{
		Success: true,
		Source:  res.Source,
		Data:    res.Customer,
	})
}

// GetConsents looks up all business-unit consents for a customer
func (h *ConsentHandler) GetConsents(c echo.Context) error {
	res, err := h.consentSvc.ConsentsByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &successEnvelope{
		Success: true,
		Source:  res.Source,
		Data:    res.Record,
	})
}

// PutConsent updates a single consent addressed by its flattened sequence number
func (h *ConsentHandler) PutConsent(c echo.Context) error {
	id := c.Param("id")

	sequence, err := strconv.Atoi(c.Param("sequence"))
	if err != nil {
		return errors.NewAPIError(errors.CodeInvalidConsentData, http.StatusBadRequest, "Consent sequence number must be a positive integer").
			WithCustomerID(id).
			WithConsentID(c.Param("sequence"))
	}

	var req updateConsentReq
	if err := c.Bind(&req); err != nil {
		return errors.NewAPIError(errors.CodeInvalidConsentData, http.StatusBadRequest, "Invalid request body").
			WithCustomerID(id)
	}
	if err := c.Validate(&req); err != nil {
		return errors.NewAPIError(errors.CodeInvalidConsentData, http.StatusBadRequest, "Invalid status or statusType in request body").
			WithCustomerID(id).
			WithDetails(err.Error())
	}

	res, err := h.consentSvc.UpdateConsent(c.Request().Context(), id, sequence, req.Status, req.StatusType)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &successEnvelope{
		Success: true,
		Source:  res.Source,
		Message: "Consent updated successfully",
		Data:    res.Consent,
	})
}
