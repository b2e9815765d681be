package models

import "time"

// BaseModel holds the fields shared by every persisted entity.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaginationQuery carries the pagination parameters of list endpoints.
type PaginationQuery struct {
	Page     int  `form:"page" json:"page"`
	PageSize int  `form:"page_size" json:"page_size"`
	Desc     bool `form:"desc" json:"desc"`
}

// PaginationResult describes one page of a list response.
type PaginationResult struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// Normalize clamps pagination parameters to sane bounds.
func (q *PaginationQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 10
	}
}

// Offset returns the row offset of the requested page.
func (q *PaginationQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// NewPaginationResult creates a pagination result object.
func NewPaginationResult(total int64, page, pageSize int) PaginationResult {
	return PaginationResult{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
