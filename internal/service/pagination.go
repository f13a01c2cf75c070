package service

// Pagination defaults matching the original catalog API.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
)

// normalizePage applies the pagination defaults.
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// totalPages computes ceil(total / perPage).
func totalPages(total int64, perPage int) int {
	return int((total + int64(perPage) - 1) / int64(perPage))
}
