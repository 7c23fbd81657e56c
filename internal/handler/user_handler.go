package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bikefine/internal/repository"
	"bikefine/internal/service"
)

// UserHandler handles the admin-facing citizen account endpoints.
type UserHandler struct {
	userService  service.UserService
	adminService service.AdminService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, adminService service.AdminService) *UserHandler {
	return &UserHandler{userService: userService, adminService: adminService}
}

// CreateUserRequest represents an admin-created citizen account.
type CreateUserRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	NumberPlate string `json:"numberPlate"`
	Role        string `json:"role"`
}

// UpdateUserRequest represents a partial user update. Pointer fields
// distinguish "absent" from "set to zero value".
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	NumberPlate *string `json:"numberPlate"`
	Password    *string `json:"password"`
	Active      *bool   `json:"active"`
}

// List godoc
// @Summary List citizen accounts
// @Tags users
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param role query string false "Role filter"
// @Param active query bool false "Active filter"
// @Param search query string false "Free-text search over name/email/plate"
// @Success 200 {object} errors.Envelope
// @Failure 500 {object} errors.Envelope
// @Router /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	filter := repository.UserFilter{
		Role:        c.QueryParam("role"),
		Active:      queryBool(c, "active"),
		Search:      c.QueryParam("search"),
		CreatedFrom: queryTime(c, "createdFrom"),
		CreatedTo:   queryTime(c, "createdTo"),
	}

	users, total, err := h.userService.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusOK, NewPagedData(users, total, page, limit), "")
}

// Get godoc
// @Summary Get a citizen account
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusOK, user, "")
}

// Create godoc
// @Summary Create a citizen account
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Register(c.Request().Context(), service.UserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		Address:     req.Address,
		NumberPlate: req.NumberPlate,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	logAdminActivity(c, h.adminService, "create", "user", user.ID.String(), "")

	return respondOK(c, http.StatusCreated, user, "user created")
}

// Update godoc
// @Summary Update a citizen account
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.NumberPlate != nil {
		fields["number_plate"] = *req.NumberPlate
	}
	if req.Password != nil {
		fields["password"] = *req.Password
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	user, err := h.userService.Update(c.Request().Context(), id, fields)
	if err != nil {
		return respondDomainError(c, err)
	}

	logAdminActivity(c, h.adminService, "update", "user", id.String(), "")

	return respondOK(c, http.StatusOK, user, "user updated")
}

// Delete godoc
// @Summary Delete a citizen account
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return respondDomainError(c, err)
	}

	logAdminActivity(c, h.adminService, "delete", "user", id.String(), "")

	return respondOK(c, http.StatusOK, nil, "user deleted")
}
