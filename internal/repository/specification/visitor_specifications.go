package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByFingerprint struct {
	Fingerprint string
}

func (s ByFingerprint) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("fingerprint = ?", s.Fingerprint)
}

type OwnedByVisitor struct {
	VisitorID uuid.UUID
}

func (s OwnedByVisitor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("visitor_id = ?", s.VisitorID)
}
