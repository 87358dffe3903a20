package service

import (
	"math"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
)

const defaultPageSize = 10
const maxPageSize = 100

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampPageSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

func buildPagination(page, pageSize int, total int64) dto.PaginationMeta {
	meta := dto.PaginationMeta{
		Page:       maxInt(page, 1),
		PageSize:   pageSize,
		TotalItems: total,
	}
	if pageSize > 0 {
		meta.TotalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}
	if meta.TotalPages < 1 {
		meta.TotalPages = 1
	}
	return meta
}
