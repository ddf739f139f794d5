package entity

import (
	"time"

	"github.com/google/uuid"
)

type ArrivalMethod string

const (
	ArrivalPlane  ArrivalMethod = "plane"
	ArrivalCruise ArrivalMethod = "cruise"
	ArrivalFerry  ArrivalMethod = "ferry"
)

// Visitor is the canonical, de-duplicated identity of one person across
// devices and sessions. Email is the only verified-ish handle and stays
// nil until the visitor volunteers it.
type Visitor struct {
	Id               uuid.UUID
	Name             string
	Email            *string
	ArrivalMethod    *ArrivalMethod
	VisitCount       int
	PersonalityTags  []string
	PersonalityNotes *string
	FirstSeenAt      time.Time
	LastSeenAt       time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// DeviceSignature maps a client-computed browser fingerprint to at most one
// Visitor. The fingerprint is a hint for recognition, never a credential:
// it can collide and it can drift between browser updates.
type DeviceSignature struct {
	Id          uuid.UUID
	Fingerprint string
	VisitorId   *uuid.UUID
	UserAgent   *string
	IpAddress   *string
	UseCount    int
	FirstSeenAt time.Time
	LastSeenAt  time.Time
}
