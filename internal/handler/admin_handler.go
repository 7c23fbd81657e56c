package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bikefine/internal/model"
	"bikefine/internal/repository"
	"bikefine/internal/service"
)

const (
	adminContextKey   = "admin"
	sessionContextKey = "adminSession"
	adminTokenHeader  = "X-Admin-Token"
)

// AdminHandler handles admin authentication, session and audit endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// AdminLoginRequest represents an admin login request.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginData is the data payload of a successful admin login.
type AdminLoginData struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expiresAt"`
	Admin     interface{} `json:"admin"`
}

// Login godoc
// @Summary Login an administrator
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Admin credentials"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Router /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	session, admin, err := h.adminService.Login(
		c.Request().Context(),
		req.Email,
		req.Password,
		c.RealIP(),
		c.Request().UserAgent(),
	)
	if err != nil {
		return respondDomainError(c, err)
	}

	return respondOK(c, http.StatusOK, AdminLoginData{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		Admin:     admin,
	}, "login successful")
}

// Logout godoc
// @Summary Invalidate the current admin session
// @Tags admin
// @Produce json
// @Success 200 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(c echo.Context) error {
	session := currentSession(c)
	if session == nil {
		return respondError(c, http.StatusUnauthorized, "no active session")
	}

	deleted, err := h.adminService.InvalidateSession(c.Request().Context(), session.Token)
	if err != nil {
		return respondDomainError(c, err)
	}
	if !deleted {
		return respondOK(c, http.StatusOK, nil, "session already invalidated")
	}

	logAdminActivity(c, h.adminService, "logout", "session", "", "")

	return respondOK(c, http.StatusOK, nil, "logged out")
}

// Session godoc
// @Summary Validate the current admin session
// @Tags admin
// @Produce json
// @Success 200 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Router /admin/session [get]
func (h *AdminHandler) Session(c echo.Context) error {
	admin := currentAdmin(c)
	session := currentSession(c)
	if admin == nil || session == nil {
		return respondError(c, http.StatusUnauthorized, "no active session")
	}
	return respondOK(c, http.StatusOK, map[string]interface{}{
		"admin":     admin,
		"expiresAt": session.ExpiresAt,
	}, "")
}

// Activities godoc
// @Summary List admin audit records
// @Tags admin
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param action query string false "Action filter"
// @Param resource query string false "Resource filter"
// @Success 200 {object} errors.Envelope
// @Router /admin/activities [get]
func (h *AdminHandler) Activities(c echo.Context) error {
	page, limit := pageParams(c)
	filter := repository.ActivityFilter{
		AdminID:  queryUUID(c, "adminId"),
		Action:   c.QueryParam("action"),
		Resource: c.QueryParam("resource"),
		From:     queryTime(c, "from"),
		To:       queryTime(c, "to"),
	}

	activities, total, err := h.adminService.ListActivities(c.Request().Context(), filter, page, limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusOK, NewPagedData(activities, total, page, limit), "")
}

// AdminAuthMiddleware validates the opaque session token on every admin route.
// The token comes from the X-Admin-Token header, falling back to the token
// query parameter. Client-side state is never trusted: every request hits the
// session service.
func AdminAuthMiddleware(adminService service.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(adminTokenHeader)
			if token == "" {
				token = c.QueryParam("token")
			}

			session, admin, err := adminService.ValidateSession(c.Request().Context(), token)
			if err != nil {
				return respondDomainError(c, err)
			}

			c.Set(adminContextKey, admin)
			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// currentAdmin returns the admin set by AdminAuthMiddleware, or nil.
func currentAdmin(c echo.Context) *model.AdminUser {
	admin, _ := c.Get(adminContextKey).(*model.AdminUser)
	return admin
}

// currentSession returns the session set by AdminAuthMiddleware, or nil.
func currentSession(c echo.Context) *model.AdminSession {
	session, _ := c.Get(sessionContextKey).(*model.AdminSession)
	return session
}

// logAdminActivity appends an audit record for the acting admin. Best-effort;
// the service swallows failures.
func logAdminActivity(c echo.Context, adminService service.AdminService, action, resource, resourceID, details string) {
	admin := currentAdmin(c)
	if admin == nil {
		return
	}
	adminService.LogActivity(c.Request().Context(), service.ActivityEntry{
		AdminID:    admin.ID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
		IP:         c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
	})
}
