package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "bikefine/internal/errors"
	"bikefine/internal/repository"
)

// PagedData is the payload shape for every list endpoint.
type PagedData struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
}

// NewPagedData assembles the pagination payload from a repository list result.
func NewPagedData(data interface{}, total int64, page, limit int) PagedData {
	page, limit, _ = repository.NormalizePage(page, limit)
	return PagedData{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: repository.TotalPages(total, limit),
	}
}

func respondOK(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, apperrors.OK(data, message))
}

func respondError(c echo.Context, status int, msg string) error {
	return c.JSON(status, apperrors.Fail(msg))
}

// respondDomainError maps a service error onto the envelope. Everything
// unexpected collapses to a 500 with a generic message.
func respondDomainError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, apperrors.Fail(httpErr.Message))
}

// pageParams reads page/limit query parameters with list defaults.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// queryUUID parses an optional UUID query parameter. Malformed values are
// treated like any other unrecognized filter input and ignored.
func queryUUID(c echo.Context, name string) *uuid.UUID {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// formUUID parses an optional UUID form field.
func formUUID(c echo.Context, name string) *uuid.UUID {
	raw := c.FormValue(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// queryBool parses an optional boolean query parameter.
func queryBool(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// queryTime parses an optional RFC 3339 or date-only query parameter.
func queryTime(c echo.Context, name string) *time.Time {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

// pathUUID parses the :id path parameter, answering 400 on malformed ids.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
