package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type listQueryParams struct {
	Page    int
	Limit   int
	Offset  int
	Search  string
	Pattern string
}

func parseListQueryParams(rawPage, rawLimit, rawSearch string) listQueryParams {
	page := 1
	if parsedPage, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil && parsedPage > 0 {
		page = parsedPage
	}

	limit := defaultPageLimit
	if parsedLimit, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && parsedLimit > 0 {
		limit = parsedLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	search := strings.TrimSpace(rawSearch)

	return listQueryParams{
		Page:    page,
		Limit:   limit,
		Offset:  (page - 1) * limit,
		Search:  search,
		Pattern: likePattern(search),
	}
}

// likePattern builds a case-insensitive substring pattern, or "" when the
// filter is absent so queries can skip the clause with `$n = ''`.
func likePattern(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return "%" + strings.ToLower(trimmed) + "%"
}

func paginationMeta(params listQueryParams, totalItems int) gin.H {
	totalPages := totalItems / params.Limit
	if totalItems%params.Limit != 0 {
		totalPages++
	}

	return gin.H{
		"currentPage":  params.Page,
		"totalPages":   totalPages,
		"totalItems":   totalItems,
		"itemsPerPage": params.Limit,
	}
}
