package specification

import (
	"gorm.io/gorm"
)

// ByTag matches notes carrying tag, ignoring case.
type ByTag struct {
	Tag string
}

func (s ByTag) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(notes.tags) AS t(tag) WHERE lower(t.tag) = lower(?))", s.Tag)
}

// NewestFirst orders by creation time, most recent first
func NewestFirst() Specification {
	return OrderBy{Field: "created_at", Desc: true}
}
