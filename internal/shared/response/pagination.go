package response

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageParams reads page and page_size (alias limit) from the query string.
func PageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	sizeParam := c.Query("page_size")
	if sizeParam == "" {
		sizeParam = c.DefaultQuery("limit", strconv.Itoa(defaultPageSize))
	}
	pageSize, _ := strconv.Atoi(sizeParam)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// Paginate slices an already filtered and sorted list.
func Paginate[T any](items []T, page, pageSize int) ([]T, PaginationMeta) {
	total := int64(len(items))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], NewPaginationMeta(total, page, pageSize)
}
