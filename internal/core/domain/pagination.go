package domain

// PaginationInfo - метаданные пагинации, которые отдает бэкенд вместе со страницей.
type PaginationInfo struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPaginationInfo строит метаданные, вычисляя производные флаги.
func NewPaginationInfo(currentPage, totalPages, totalItems int) PaginationInfo {
	p := PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
	}
	return p.Normalize()
}

// Normalize пересчитывает hasNextPage/hasPrevPage из номера страницы и числа страниц.
func (p PaginationInfo) Normalize() PaginationInfo {
	p.HasNextPage = p.CurrentPage < p.TotalPages
	p.HasPrevPage = p.CurrentPage > 1
	return p
}

// ListingPage - одна страница выдачи каталога.
type ListingPage struct {
	Properties []Property
	Pagination *PaginationInfo // nil, если бэкенд не прислал метаданные
}
