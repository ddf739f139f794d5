package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByMemoryType struct {
	MemoryType string
}

func (s ByMemoryType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("memory_type = ?", s.MemoryType)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// SubjectContains matches paraphrased place names with a case-insensitive
// substring search.
type SubjectContains struct {
	Subject string
}

func (s SubjectContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject ILIKE ?", "%"+s.Subject+"%")
}

// MinImportance keeps rows at or above the floor. Unranked rows (NULL
// importance) are treated as below any floor.
type MinImportance struct {
	Floor int
}

func (s MinImportance) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("importance >= ?", s.Floor)
}

// NotExpired excludes soft-expired rows at read time. Rows are never
// physically purged here.
type NotExpired struct {
	Now time.Time
}

func (s NotExpired) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at IS NULL OR expires_at > ?", s.Now)
}

// ByPlaceName matches ratings for one place, case-insensitive.
type ByPlaceName struct {
	PlaceName string
}

func (s ByPlaceName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("place_name ILIKE ?", s.PlaceName)
}
