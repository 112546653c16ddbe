package response

import "storefront/pkg/utils"

// PaginationMeta
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginationMeta(page, perPage int, total int64) PaginationMeta {
	return PaginationMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: utils.CalculateTotalPages(total, perPage),
	}
}
