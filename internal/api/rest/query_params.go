package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/stegavault/stegavault/internal/domain"
)

// PaginationQueryParams holds query parameters for paginated listings
type PaginationQueryParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// Validate validates the pagination parameters
func (p *PaginationQueryParams) Validate() error {
	if p.Limit < 1 || p.Limit > domain.MAX_PAGE_LIMIT {
		return fmt.Errorf("limit must be between 1 and %d", domain.MAX_PAGE_LIMIT)
	}
	if p.Offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}
	return nil
}

// VerifyQueryParams holds query parameters for GET /assets/:id/verify
type VerifyQueryParams struct {
	Owner string `form:"owner" binding:"required"`
}

// ParsePaginationQuery parses and validates pagination query parameters
func ParsePaginationQuery(c *gin.Context) (*PaginationQueryParams, error) {
	var params PaginationQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParseVerifyQuery parses query parameters for GET /assets/:id/verify
func ParseVerifyQuery(c *gin.Context) (*VerifyQueryParams, error) {
	var params VerifyQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, fmt.Errorf("owner is required")
	}
	return &params, nil
}
