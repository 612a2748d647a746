// Package handler defines the HTTP handlers of the API.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Pagination defaults shared by every list endpoint.
const (
	defaultPageSize = 10
	maxPageSize     = 20
)

// pagedResponse is the envelope for every list endpoint.
type pagedResponse struct {
	Items    any   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// pageParams reads ?page= and ?page_size= and converts them to a
// limit/offset pair. Out-of-range values are clamped, never rejected.
func pageParams(c echo.Context) (page, size, limit, offset int) {
	page = 1
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	size = defaultPageSize
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		size = v
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size, size, (page - 1) * size
}

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}
