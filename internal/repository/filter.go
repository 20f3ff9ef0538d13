package repository

import (
	"time"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListFilter carries the optional text search, date range and pagination
// shared by every list endpoint. Zero values mean "no constraint".
type ListFilter struct {
	Search string
	From   *time.Time
	To     *time.Time
	Page   int
	Size   int
}

// paginate applies page/size with defaults and the size cap. Results are kept
// in insertion order.
func paginate(db *gorm.DB, f ListFilter) *gorm.DB {
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.Size
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return db.Order("created_at asc").Offset((page - 1) * size).Limit(size)
}

// dateRange constrains the given column to [From, To] when set.
func dateRange(db *gorm.DB, column string, f ListFilter) *gorm.DB {
	if f.From != nil {
		db = db.Where(column+" >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where(column+" <= ?", *f.To)
	}
	return db
}
