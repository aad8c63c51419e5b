package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mzaleski/project-hub-api/internal/constants"
)

// PaginationParams holds offset/limit pagination parameters
type PaginationParams struct {
	Offset int
	Limit  int
}

// GetPaginationParams extracts and clamps pagination parameters from the request.
// Limit is clamped to [1, MaxPageSize] regardless of what the client asks for.
func GetPaginationParams(c *gin.Context) PaginationParams {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultHistoryLimit)))

	return PaginationParams{
		Offset: ClampOffset(offset),
		Limit:  ClampLimit(limit),
	}
}

// ClampLimit bounds a requested page size to [MinPageSize, MaxPageSize].
func ClampLimit(limit int) int {
	if limit < constants.MinPageSize {
		return constants.DefaultHistoryLimit
	}
	if limit > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return limit
}

// ClampOffset bounds a requested offset to be non-negative.
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
