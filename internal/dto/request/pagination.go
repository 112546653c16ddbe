package request

import "storefront/pkg/utils"

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return utils.DefaultPerPage
	}
	if p.PerPage > utils.MaxPerPage {
		return utils.MaxPerPage
	}
	return p.PerPage
}
