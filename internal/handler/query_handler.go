package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "bikefine/internal/errors"
	"bikefine/internal/model"
	"bikefine/internal/repository"
	"bikefine/internal/service"
)

// QueryHandler handles support query endpoints.
type QueryHandler struct {
	queryService service.QueryService
	adminService service.AdminService
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(queryService service.QueryService, adminService service.AdminService) *QueryHandler {
	return &QueryHandler{queryService: queryService, adminService: adminService}
}

// CreateQueryRequest represents a new support query from a citizen.
type CreateQueryRequest struct {
	CaseID   string `json:"caseId"`
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	IsUrgent bool   `json:"isUrgent"`
}

// UpdateQueryRequest represents a partial query update by an admin.
type UpdateQueryRequest struct {
	Status     *string `json:"status"`
	Category   *string `json:"category"`
	Priority   *string `json:"priority"`
	AssignedTo *string `json:"assignedTo"`
}

// RespondRequest represents an admin reply to a query.
type RespondRequest struct {
	Message string `json:"message" validate:"required"`
}

// AttachRequest links previously uploaded file metadata to a query.
type AttachRequest struct {
	ResponseID string `json:"responseId"`
	FileName   string `json:"fileName" validate:"required"`
	FileURL    string `json:"fileUrl" validate:"required"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
}

// Create godoc
// @Summary Open a support query
// @Tags queries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateQueryRequest true "Query data"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /queries [post]
func (h *QueryHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "invalid token")
	}

	var req CreateQueryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	in := service.QueryInput{
		UserID:   userID,
		Subject:  req.Subject,
		Message:  req.Message,
		Category: req.Category,
		Priority: model.QueryPriority(req.Priority),
		IsUrgent: req.IsUrgent,
	}
	if req.CaseID != "" {
		caseID, err := uuid.Parse(req.CaseID)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid caseId")
		}
		in.CaseID = &caseID
	}

	created, err := h.queryService.Create(c.Request().Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusCreated, created, "query opened")
}

// List godoc
// @Summary List support queries
// @Tags queries
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param isUrgent query bool false "Urgency filter"
// @Success 200 {object} errors.Envelope
// @Router /admin/queries [get]
func (h *QueryHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	filter := queryFilterFromQuery(c)

	queries, total, err := h.queryService.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusOK, NewPagedData(queries, total, page, limit), "")
}

// ListOwn lists the authenticated citizen's queries.
func (h *QueryHandler) ListOwn(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "invalid token")
	}

	page, limit := pageParams(c)
	filter := queryFilterFromQuery(c)
	filter.UserID = &userID

	queries, total, err := h.queryService.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusOK, NewPagedData(queries, total, page, limit), "")
}

// Get godoc
// @Summary Get a support query with responses and attachments
// @Tags queries
// @Produce json
// @Param id path string true "Query id"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /queries/{id} [get]
func (h *QueryHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.queryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	// Citizens only see their own queries; a foreign id reads as not found.
	if currentAdmin(c) == nil {
		if userID, err := currentUserID(c); err == nil && detail.Query.UserID != userID {
			return respondDomainError(c, apperrors.ErrQueryNotFound)
		}
	}
	return respondOK(c, http.StatusOK, detail, "")
}

// Update godoc
// @Summary Update a support query
// @Tags queries
// @Accept json
// @Produce json
// @Param id path string true "Query id"
// @Param request body UpdateQueryRequest true "Fields to update"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/queries/{id} [put]
func (h *QueryHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateQueryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	fields := map[string]interface{}{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
		fields["is_urgent"] = *req.Priority == string(model.QueryPriorityUrgent)
	}
	if req.AssignedTo != nil {
		adminID, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid assignedTo")
		}
		fields["assigned_to"] = adminID
	}

	updated, err := h.queryService.Update(c.Request().Context(), id, fields)
	if err != nil {
		return respondDomainError(c, err)
	}

	logAdminActivity(c, h.adminService, "update", "query", id.String(), "")

	return respondOK(c, http.StatusOK, updated, "query updated")
}

// Delete godoc
// @Summary Delete a support query
// @Tags queries
// @Produce json
// @Param id path string true "Query id"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/queries/{id} [delete]
func (h *QueryHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.queryService.Delete(c.Request().Context(), id); err != nil {
		return respondDomainError(c, err)
	}

	logAdminActivity(c, h.adminService, "delete", "query", id.String(), "")

	return respondOK(c, http.StatusOK, nil, "query deleted")
}

// Respond godoc
// @Summary Reply to a support query
// @Tags queries
// @Accept json
// @Produce json
// @Param id path string true "Query id"
// @Param request body RespondRequest true "Reply"
// @Success 201 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/queries/{id}/responses [post]
func (h *QueryHandler) Respond(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	admin := currentAdmin(c)
	if admin == nil {
		return respondError(c, http.StatusUnauthorized, "no active session")
	}

	var req RespondRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	resp, err := h.queryService.Respond(c.Request().Context(), id, admin.ID, req.Message)
	if err != nil {
		return respondDomainError(c, err)
	}

	logAdminActivity(c, h.adminService, "respond", "query", id.String(), "")

	return respondOK(c, http.StatusCreated, resp, "response added")
}

// Attach godoc
// @Summary Attach uploaded file metadata to a query
// @Tags queries
// @Accept json
// @Produce json
// @Param id path string true "Query id"
// @Param request body AttachRequest true "Attachment metadata"
// @Success 201 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/queries/{id}/attachments [post]
func (h *QueryHandler) Attach(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req AttachRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	var responseID *uuid.UUID
	if req.ResponseID != "" {
		rid, err := uuid.Parse(req.ResponseID)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid responseId")
		}
		responseID = &rid
	}

	att, err := h.queryService.Attach(c.Request().Context(), id, responseID, req.FileName, req.FileURL, req.MimeType, req.Size)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusCreated, att, "attachment linked")
}

func queryFilterFromQuery(c echo.Context) repository.QueryFilter {
	return repository.QueryFilter{
		Status:         c.QueryParam("status"),
		Category:       c.QueryParam("category"),
		Priority:       c.QueryParam("priority"),
		CaseID:         queryUUID(c, "caseId"),
		AssignedTo:     queryUUID(c, "assignedTo"),
		IsUrgent:       queryBool(c, "isUrgent"),
		HasAttachments: queryBool(c, "hasAttachments"),
		Search:         c.QueryParam("search"),
	}
}
