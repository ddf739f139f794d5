package service

import (
	"context"
	"fmt"
	"time"

	"tobago-concierge-be/internal/constant"
	"tobago-concierge-be/internal/dto"
	"tobago-concierge-be/internal/entity"
	"tobago-concierge-be/internal/pkg/logger"
	"tobago-concierge-be/internal/pkg/mailer"
	"tobago-concierge-be/internal/repository/specification"
	"tobago-concierge-be/internal/repository/unitofwork"
	"tobago-concierge-be/pkg/database"

	"github.com/google/uuid"
)

type IIdentityService interface {
	// Resolve recognizes the visitor behind a device fingerprint.
	// Recognition order: linked fingerprint, then email. A fresh record
	// is created only when both a name and an email arrived; otherwise
	// the result is anonymous and only the device is remembered.
	Resolve(ctx context.Context, req *dto.ResolveVisitorRequest) (*dto.ResolveVisitorResponse, error)
	// Lookup probes for an existing visitor by fingerprint or email
	// without creating or touching anything.
	Lookup(ctx context.Context, fingerprint, email string) (*dto.LookupVisitorResponse, error)
	GetVisitor(ctx context.Context, id uuid.UUID) (*dto.VisitorResponse, error)
	UpdateVisitor(ctx context.Context, id uuid.UUID, req *dto.UpdateVisitorRequest) (*dto.VisitorResponse, error)
	Stats(ctx context.Context, id uuid.UUID) (*dto.VisitorStatsResponse, error)
}

type identityService struct {
	uowFactory unitofwork.RepositoryFactory
	analytics  IAnalyticsService
	email      mailer.IEmailService
	logger     logger.ILogger
}

func NewIdentityService(
	uowFactory unitofwork.RepositoryFactory,
	analytics IAnalyticsService,
	email mailer.IEmailService,
	log logger.ILogger,
) IIdentityService {
	return &identityService{
		uowFactory: uowFactory,
		analytics:  analytics,
		email:      email,
		logger:     log,
	}
}

func (s *identityService) Resolve(ctx context.Context, req *dto.ResolveVisitorRequest) (*dto.ResolveVisitorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Fingerprint lookup
	sig, err := uow.DeviceSignatureRepository().FindOne(ctx, specification.ByFingerprint{Fingerprint: req.Fingerprint})
	if err != nil {
		return nil, err
	}
	if sig != nil && sig.VisitorId != nil {
		visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: *sig.VisitorId})
		if err != nil {
			return nil, err
		}
		if visitor != nil {
			return s.recognize(ctx, uow, visitor, req, false)
		}
		// Dangling link; fall through and re-resolve.
	}

	// 2. Email lookup
	if req.Email != nil && *req.Email != "" {
		visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByEmail{Email: *req.Email})
		if err != nil {
			return nil, err
		}
		if visitor != nil {
			if err := s.linkFingerprint(ctx, uow, req, visitor.Id); err != nil {
				return nil, err
			}
			return s.recognize(ctx, uow, visitor, req, true)
		}
	}

	// 3. Create, but only once the client has told us who this is. A bare
	// fingerprint stays anonymous; the device is remembered unlinked so
	// the next resolve in the session is a single read.
	if req.Name == "" || req.Email == nil || *req.Email == "" {
		return s.rememberDevice(ctx, uow, req, sig)
	}
	return s.createVisitor(ctx, uow, req)
}

// rememberDevice records an unlinked device signature for an anonymous
// caller. No visitor row is created and no analytics fire.
func (s *identityService) rememberDevice(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.ResolveVisitorRequest, sig *entity.DeviceSignature) (*dto.ResolveVisitorResponse, error) {
	if sig == nil {
		fresh := &entity.DeviceSignature{
			Fingerprint: req.Fingerprint,
			UserAgent:   req.UserAgent,
			IpAddress:   req.IpAddress,
		}
		if err := uow.DeviceSignatureRepository().Save(ctx, fresh); err != nil {
			return nil, err
		}
	} else if err := uow.DeviceSignatureRepository().Touch(ctx, req.Fingerprint); err != nil {
		return nil, err
	}
	return &dto.ResolveVisitorResponse{IsNewDevice: sig == nil}, nil
}

// recognize records the repeat visit and applies any new profile detail the
// client sent along.
func (s *identityService) recognize(ctx context.Context, uow unitofwork.UnitOfWork, visitor *entity.Visitor, req *dto.ResolveVisitorRequest, newDevice bool) (*dto.ResolveVisitorResponse, error) {
	if err := uow.VisitorRepository().RecordVisit(ctx, visitor.Id); err != nil {
		return nil, err
	}
	if err := uow.DeviceSignatureRepository().Touch(ctx, req.Fingerprint); err != nil {
		return nil, err
	}

	emailCaptured := false
	fields := map[string]interface{}{}
	if req.Name != "" && req.Name != visitor.Name {
		fields["name"] = req.Name
		visitor.Name = req.Name
	}
	if req.Email != nil && *req.Email != "" && visitor.Email == nil {
		fields["email"] = *req.Email
		visitor.Email = req.Email
		emailCaptured = true
	}
	if req.ArrivalMethod != nil && visitor.ArrivalMethod == nil {
		fields["arrival_method"] = *req.ArrivalMethod
		method := entity.ArrivalMethod(*req.ArrivalMethod)
		visitor.ArrivalMethod = &method
	}
	if len(fields) > 0 {
		if err := uow.VisitorRepository().UpdateProfile(ctx, visitor.Id, fields); err != nil {
			return nil, err
		}
	}
	if emailCaptured {
		s.sendWelcomeTips(visitor)
	}

	visitor.VisitCount++
	visitor.LastSeenAt = time.Now()

	s.analytics.Emit(ctx, constant.EventVisitorRecognized, &visitor.Id, nil, map[string]interface{}{
		"visit_count": visitor.VisitCount,
	})

	return &dto.ResolveVisitorResponse{
		Visitor:     toVisitorResponse(visitor, true),
		IsReturning: true,
		IsNewDevice: newDevice,
	}, nil
}

func (s *identityService) createVisitor(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.ResolveVisitorRequest) (*dto.ResolveVisitorResponse, error) {
	now := time.Now()
	visitor := &entity.Visitor{
		Name:        req.Name,
		Email:       req.Email,
		VisitCount:  1,
		FirstSeenAt: now,
		LastSeenAt:  now,
	}
	if req.ArrivalMethod != nil {
		method := entity.ArrivalMethod(*req.ArrivalMethod)
		visitor.ArrivalMethod = &method
	}

	if err := uow.VisitorRepository().Create(ctx, visitor); err != nil {
		// Lost a race on the email unique index: someone else created this
		// visitor between our lookup and insert. Recognize them instead.
		if database.IsUniqueViolation(err) && visitor.Email != nil {
			existing, findErr := uow.VisitorRepository().FindOne(ctx, specification.ByEmail{Email: *visitor.Email})
			if findErr != nil {
				return nil, findErr
			}
			if existing != nil {
				if linkErr := s.linkFingerprint(ctx, uow, req, existing.Id); linkErr != nil {
					return nil, linkErr
				}
				return s.recognize(ctx, uow, existing, req, true)
			}
		}
		return nil, err
	}

	if err := s.linkFingerprint(ctx, uow, req, visitor.Id); err != nil {
		return nil, err
	}

	if visitor.Email != nil {
		s.sendWelcomeTips(visitor)
	}

	s.analytics.Emit(ctx, constant.EventVisitorCreated, &visitor.Id, nil, map[string]interface{}{
		"has_email": visitor.Email != nil,
	})

	return &dto.ResolveVisitorResponse{
		Visitor:     toVisitorResponse(visitor, false),
		IsNewDevice: true,
	}, nil
}

func (s *identityService) linkFingerprint(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.ResolveVisitorRequest, visitorId uuid.UUID) error {
	sig := &entity.DeviceSignature{
		Fingerprint: req.Fingerprint,
		VisitorId:   &visitorId,
		UserAgent:   req.UserAgent,
		IpAddress:   req.IpAddress,
	}
	if err := uow.DeviceSignatureRepository().Save(ctx, sig); err != nil {
		return err
	}
	// Save is insert-or-keep; an existing row still needs relinking.
	if sig.VisitorId == nil || *sig.VisitorId != visitorId {
		return uow.DeviceSignatureRepository().LinkToVisitor(ctx, req.Fingerprint, visitorId)
	}
	return nil
}

func (s *identityService) sendWelcomeTips(visitor *entity.Visitor) {
	if s.email == nil || visitor.Email == nil {
		return
	}
	email := *visitor.Email
	name := visitor.Name
	// Best effort, off the request path.
	go func() {
		tips := []string{
			"Nylon Pool is best at low tide, go early",
			"Store Bay vendors sell the island's best crab and dumpling",
			"Sunday School in Buccoo is the place to be on Sunday night",
		}
		if err := s.email.SendWelcomeTips(email, name, tips); err != nil {
			s.logger.Warn("identity", "Failed to send welcome tips", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}

func (s *identityService) Lookup(ctx context.Context, fingerprint, email string) (*dto.LookupVisitorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if fingerprint != "" {
		sig, err := uow.DeviceSignatureRepository().FindOne(ctx, specification.ByFingerprint{Fingerprint: fingerprint})
		if err != nil {
			return nil, err
		}
		if sig != nil && sig.VisitorId != nil {
			visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: *sig.VisitorId})
			if err != nil {
				return nil, err
			}
			if visitor != nil {
				return &dto.LookupVisitorResponse{Found: true, Visitor: toVisitorResponse(visitor, visitor.VisitCount > 1)}, nil
			}
		}
	}

	if email != "" {
		visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByEmail{Email: email})
		if err != nil {
			return nil, err
		}
		if visitor != nil {
			return &dto.LookupVisitorResponse{Found: true, Visitor: toVisitorResponse(visitor, visitor.VisitCount > 1)}, nil
		}
	}

	return &dto.LookupVisitorResponse{Found: false}, nil
}

func (s *identityService) Stats(ctx context.Context, id uuid.UUID) (*dto.VisitorStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, fmt.Errorf("visitor %s: %w", id, ErrNotFound)
	}

	owned := specification.OwnedByVisitor{VisitorID: id}
	conversations, err := uow.ConversationRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	memories, err := uow.MemoryRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	ratings, err := uow.RatingRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}

	eventCounts := map[string]int64{}
	events, err := uow.AnalyticsRepository().FindAll(ctx, owned)
	if err != nil {
		return nil, err
	}
	for _, event := range events {
		eventCounts[event.EventType]++
	}

	return &dto.VisitorStatsResponse{
		VisitorId:     id,
		VisitCount:    visitor.VisitCount,
		MemberSince:   visitor.FirstSeenAt,
		Conversations: conversations,
		Memories:      memories,
		Ratings:       ratings,
		EventCounts:   eventCounts,
	}, nil
}

func (s *identityService) GetVisitor(ctx context.Context, id uuid.UUID) (*dto.VisitorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	visitor, err := uow.VisitorRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, fmt.Errorf("visitor %s: %w", id, ErrNotFound)
	}
	return toVisitorResponse(visitor, visitor.VisitCount > 1), nil
}

func (s *identityService) UpdateVisitor(ctx context.Context, id uuid.UUID, req *dto.UpdateVisitorRequest) (*dto.VisitorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.VisitorRepository()

	visitor, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, fmt.Errorf("visitor %s: %w", id, ErrNotFound)
	}

	emailCaptured := false
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
		visitor.Name = *req.Name
	}
	if req.Email != nil {
		if visitor.Email == nil {
			emailCaptured = true
		}
		fields["email"] = *req.Email
		visitor.Email = req.Email
	}
	if req.ArrivalMethod != nil {
		fields["arrival_method"] = *req.ArrivalMethod
		method := entity.ArrivalMethod(*req.ArrivalMethod)
		visitor.ArrivalMethod = &method
	}

	if len(fields) > 0 {
		if err := repo.UpdateProfile(ctx, id, fields); err != nil {
			if database.IsUniqueViolation(err) {
				return nil, fmt.Errorf("email already in use: %w", ErrConflict)
			}
			return nil, err
		}
	}
	if emailCaptured {
		s.sendWelcomeTips(visitor)
	}

	return toVisitorResponse(visitor, visitor.VisitCount > 1), nil
}

func toVisitorResponse(v *entity.Visitor, isReturning bool) *dto.VisitorResponse {
	var arrival *string
	if v.ArrivalMethod != nil {
		a := string(*v.ArrivalMethod)
		arrival = &a
	}
	return &dto.VisitorResponse{
		Id:               v.Id,
		Name:             v.Name,
		Email:            v.Email,
		ArrivalMethod:    arrival,
		VisitCount:       v.VisitCount,
		PersonalityTags:  v.PersonalityTags,
		PersonalityNotes: v.PersonalityNotes,
		FirstSeenAt:      v.FirstSeenAt,
		LastSeenAt:       v.LastSeenAt,
		IsReturning:      isReturning,
	}
}
