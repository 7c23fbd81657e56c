package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"bikefine/internal/service"
	"bikefine/internal/upload"
)

// UploadHandler accepts multipart media uploads and optionally links the
// stored URL to a case's evidence list or a query as an attachment.
type UploadHandler struct {
	store        *upload.Store
	caseService  service.CaseService
	queryService service.QueryService
	adminService service.AdminService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(store *upload.Store, caseService service.CaseService, queryService service.QueryService, adminService service.AdminService) *UploadHandler {
	return &UploadHandler{
		store:        store,
		caseService:  caseService,
		queryService: queryService,
		adminService: adminService,
	}
}

// Upload godoc
// @Summary Upload evidence media
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image or video, max 25MB"
// @Param caseId formData string false "Case to append evidence to"
// @Param queryId formData string false "Query to attach the file to"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/uploads [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, http.StatusBadRequest, "missing file field")
	}

	result, err := h.store.Save(fh)
	if err != nil {
		if errors.Is(err, upload.ErrUnsupportedType) || errors.Is(err, upload.ErrTooLarge) {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		return respondError(c, http.StatusInternalServerError, "failed to store upload")
	}

	ctx := c.Request().Context()

	if caseID := formUUID(c, "caseId"); caseID != nil {
		if _, err := h.caseService.AppendEvidence(ctx, *caseID, result.URL); err != nil {
			return respondDomainError(c, err)
		}
		logAdminActivity(c, h.adminService, "upload", "case", caseID.String(), result.URL)
	}

	if queryID := formUUID(c, "queryId"); queryID != nil {
		if _, err := h.queryService.Attach(ctx, *queryID, nil, result.FileName, result.URL, result.MimeType, result.Size); err != nil {
			return respondDomainError(c, err)
		}
		logAdminActivity(c, h.adminService, "upload", "query", queryID.String(), result.URL)
	}

	return respondOK(c, http.StatusCreated, result, "file uploaded")
}
