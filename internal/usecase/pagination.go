package usecase

import repo "handicrafts/internal/repository"

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	PerPage     int   `json:"per_page"`
}

// page / limit を補正する（不正値はデフォルトへ）
func normalizePage(page int, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func toRepoPage(page int, limit int) repo.Page {
	return repo.Page{Offset: (page - 1) * limit, Limit: limit}
}

func newPagination(page int, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalItems:  total,
		PerPage:     limit,
	}
}
