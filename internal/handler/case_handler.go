package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "bikefine/internal/errors"
	"bikefine/internal/repository"
	"bikefine/internal/service"
)

// CaseHandler handles violation case endpoints.
type CaseHandler struct {
	caseService  service.CaseService
	adminService service.AdminService
}

// NewCaseHandler creates a new case handler.
func NewCaseHandler(caseService service.CaseService, adminService service.AdminService) *CaseHandler {
	return &CaseHandler{caseService: caseService, adminService: adminService}
}

// CreateCaseRequest represents a violation filing. Either userId or
// numberPlate must identify the offender. Fine accepts a JSON number or a
// quoted decimal string.
type CreateCaseRequest struct {
	UserID        string          `json:"userId"`
	NumberPlate   string          `json:"numberPlate"`
	ViolationType string          `json:"violationType" validate:"required"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	Fine          decimal.Decimal `json:"fine" validate:"required"`
	ProofURL      string          `json:"proofUrl"`
	EvidenceURLs  []string        `json:"evidenceUrls"`
	DueDate       string          `json:"dueDate"`
	OfficerID     string          `json:"officerId"`
}

// UpdateCaseRequest represents a partial case update.
type UpdateCaseRequest struct {
	Status      *string          `json:"status"`
	Description *string          `json:"description"`
	Location    *string          `json:"location"`
	Fine        *decimal.Decimal `json:"fine"`
	DueDate     *string          `json:"dueDate"`
	OfficerID   *string          `json:"officerId"`
}

// Create godoc
// @Summary File a violation case
// @Tags cases
// @Accept json
// @Produce json
// @Param request body CreateCaseRequest true "Violation data"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/violations [post]
func (h *CaseHandler) Create(c echo.Context) error {
	var req CreateCaseRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if req.UserID == "" && req.NumberPlate == "" {
		return respondError(c, http.StatusBadRequest, "either userId or numberPlate is required")
	}

	in := service.CaseInput{
		NumberPlate:   req.NumberPlate,
		ViolationType: req.ViolationType,
		Description:   req.Description,
		Location:      req.Location,
		FineAmount:    req.Fine,
		EvidenceURLs:  req.EvidenceURLs,
		OfficerID:     req.OfficerID,
	}
	if req.ProofURL != "" {
		in.EvidenceURLs = append(in.EvidenceURLs, req.ProofURL)
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid userId")
		}
		in.UserID = &userID
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid dueDate, expected YYYY-MM-DD")
		}
		in.DueDate = &due
	}

	created, err := h.caseService.Create(c.Request().Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}

	logAdminActivity(c, h.adminService, "create", "case", created.ID.String(), created.ViolationType)

	return respondOK(c, http.StatusCreated, created, "case filed")
}

// List godoc
// @Summary List violation cases
// @Tags cases
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param violationType query string false "Violation type filter"
// @Param search query string false "Free-text search"
// @Success 200 {object} errors.Envelope
// @Router /admin/violations [get]
func (h *CaseHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	filter := caseFilterFromQuery(c)

	cases, total, err := h.caseService.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusOK, NewPagedData(cases, total, page, limit), "")
}

// ListOwn lists the authenticated citizen's cases.
func (h *CaseHandler) ListOwn(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "invalid token")
	}

	page, limit := pageParams(c)
	filter := caseFilterFromQuery(c)
	filter.UserID = &userID

	cases, total, err := h.caseService.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusOK, NewPagedData(cases, total, page, limit), "")
}

// Get godoc
// @Summary Get a violation case
// @Tags cases
// @Produce json
// @Param id path string true "Case id"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/violations/{id} [get]
func (h *CaseHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	found, err := h.caseService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	// Citizens only see their own cases; a foreign id reads as not found.
	if currentAdmin(c) == nil {
		if userID, err := currentUserID(c); err == nil && found.UserID != userID {
			return respondDomainError(c, apperrors.ErrCaseNotFound)
		}
	}
	return respondOK(c, http.StatusOK, found, "")
}

// Update godoc
// @Summary Update a violation case
// @Tags cases
// @Accept json
// @Produce json
// @Param id path string true "Case id"
// @Param request body UpdateCaseRequest true "Fields to update"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/violations/{id} [put]
func (h *CaseHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCaseRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	fields := map[string]interface{}{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.OfficerID != nil {
		fields["officer_id"] = *req.OfficerID
	}
	if req.Fine != nil {
		fields["fine_amount"] = *req.Fine
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid dueDate, expected YYYY-MM-DD")
		}
		fields["due_date"] = due
	}

	updated, err := h.caseService.Update(c.Request().Context(), id, fields)
	if err != nil {
		return respondDomainError(c, err)
	}

	logAdminActivity(c, h.adminService, "update", "case", id.String(), "")

	return respondOK(c, http.StatusOK, updated, "case updated")
}

// Delete godoc
// @Summary Delete a violation case
// @Tags cases
// @Produce json
// @Param id path string true "Case id"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/violations/{id} [delete]
func (h *CaseHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.caseService.Delete(c.Request().Context(), id); err != nil {
		return respondDomainError(c, err)
	}

	logAdminActivity(c, h.adminService, "delete", "case", id.String(), "")

	return respondOK(c, http.StatusOK, nil, "case deleted")
}

func caseFilterFromQuery(c echo.Context) repository.CaseFilter {
	filter := repository.CaseFilter{
		Status:        c.QueryParam("status"),
		ViolationType: c.QueryParam("violationType"),
		OfficerID:     c.QueryParam("officerId"),
		Search:        c.QueryParam("search"),
		UserID:        queryUUID(c, "userId"),
		IssuedFrom:    queryTime(c, "issuedFrom"),
		IssuedTo:      queryTime(c, "issuedTo"),
		DueFrom:       queryTime(c, "dueFrom"),
		DueTo:         queryTime(c, "dueTo"),
	}
	if raw := c.QueryParam("fineMin"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filter.FineMin = &v
		}
	}
	if raw := c.QueryParam("fineMax"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filter.FineMax = &v
		}
	}
	return filter
}
