package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bikefine/internal/repository"
	"bikefine/internal/service"
)

// PaymentHandler handles fine payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentRequest represents a fine payment request.
type CreatePaymentRequest struct {
	CaseID string `json:"caseId" validate:"required"`
	Method string `json:"method" validate:"required"`
}

// Create godoc
// @Summary Pay the fine for a case
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePaymentRequest true "Payment data"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "invalid token")
	}

	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid caseId")
	}

	payment, err := h.paymentService.Create(c.Request().Context(), userID, caseID, req.Method)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusCreated, payment, "payment completed")
}

// Get godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment id"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	// Citizens only see payments on their own cases.
	var ownerID *uuid.UUID
	if currentAdmin(c) == nil {
		if userID, err := currentUserID(c); err == nil {
			ownerID = &userID
		}
	}

	payment, err := h.paymentService.GetByID(c.Request().Context(), id, ownerID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusOK, payment, "")
}

// List godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param caseId query string false "Case filter"
// @Success 200 {object} errors.Envelope
// @Router /admin/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	filter := repository.PaymentFilter{
		Status:   c.QueryParam("status"),
		Method:   c.QueryParam("method"),
		CaseID:   queryUUID(c, "caseId"),
		PaidFrom: queryTime(c, "paidFrom"),
		PaidTo:   queryTime(c, "paidTo"),
	}

	payments, total, err := h.paymentService.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusOK, NewPagedData(payments, total, page, limit), "")
}
