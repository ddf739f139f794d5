package mapper

import (
	"time"

	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/model"
)

type VisitorMapper struct{}

func NewVisitorMapper() *VisitorMapper {
	return &VisitorMapper{}
}

func (m *VisitorMapper) ToEntity(v *model.Visitor) *entity.Visitor {
	if v == nil {
		return nil
	}

	var arrival *entity.ArrivalMethod
	if v.ArrivalMethod != nil {
		a := entity.ArrivalMethod(*v.ArrivalMethod)
		arrival = &a
	}

	var updatedAt *time.Time
	if !v.UpdatedAt.IsZero() {
		t := v.UpdatedAt
		updatedAt = &t
	}

	return &entity.Visitor{
		Id:               v.Id,
		Name:             v.Name,
		Email:            v.Email,
		ArrivalMethod:    arrival,
		VisitCount:       v.VisitCount,
		PersonalityTags:  jsonToStrings(v.PersonalityTags),
		PersonalityNotes: v.PersonalityNotes,
		FirstSeenAt:      v.FirstSeenAt,
		LastSeenAt:       v.LastSeenAt,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *VisitorMapper) ToModel(v *entity.Visitor) *model.Visitor {
	if v == nil {
		return nil
	}

	var arrival *string
	if v.ArrivalMethod != nil {
		a := string(*v.ArrivalMethod)
		arrival = &a
	}

	var updatedAt time.Time
	if v.UpdatedAt != nil {
		updatedAt = *v.UpdatedAt
	}

	return &model.Visitor{
		Id:               v.Id,
		Name:             v.Name,
		Email:            v.Email,
		ArrivalMethod:    arrival,
		VisitCount:       v.VisitCount,
		PersonalityTags:  stringsToJSON(v.PersonalityTags),
		PersonalityNotes: v.PersonalityNotes,
		FirstSeenAt:      v.FirstSeenAt,
		LastSeenAt:       v.LastSeenAt,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *VisitorMapper) ToEntities(models []*model.Visitor) []*entity.Visitor {
	entities := make([]*entity.Visitor, len(models))
	for i, v := range models {
		entities[i] = m.ToEntity(v)
	}
	return entities
}

// Device Signature Mappers

func (m *VisitorMapper) DeviceToEntity(d *model.DeviceSignature) *entity.DeviceSignature {
	if d == nil {
		return nil
	}
	return &entity.DeviceSignature{
		Id:          d.Id,
		Fingerprint: d.Fingerprint,
		VisitorId:   d.VisitorId,
		UserAgent:   d.UserAgent,
		IpAddress:   d.IpAddress,
		UseCount:    d.UseCount,
		FirstSeenAt: d.FirstSeenAt,
		LastSeenAt:  d.LastSeenAt,
	}
}

func (m *VisitorMapper) DeviceToModel(d *entity.DeviceSignature) *model.DeviceSignature {
	if d == nil {
		return nil
	}
	return &model.DeviceSignature{
		Id:          d.Id,
		Fingerprint: d.Fingerprint,
		VisitorId:   d.VisitorId,
		UserAgent:   d.UserAgent,
		IpAddress:   d.IpAddress,
		UseCount:    d.UseCount,
		FirstSeenAt: d.FirstSeenAt,
		LastSeenAt:  d.LastSeenAt,
	}
}
