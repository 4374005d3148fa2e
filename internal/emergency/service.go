package emergency

import (
	"context"
	"errors"
	"time"

	"rescue-service/internal/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrAlreadyAccepted  = errors.New("request is no longer pending")
	ErrNotAccepted      = errors.New("request is not accepted")
	ErrTypeRequired     = errors.New("emergency_type is required")
	ErrLocationRequired = errors.New("location is required")
	ErrResponderRole    = errors.New("only responders can accept requests")
)

// Lifecycle event names, shared by the realtime broadcast and the audit
// journal.
const (
	EventRequestCreated   = "request.created"
	EventRequestAccepted  = "request.accepted"
	EventRequestCompleted = "request.completed"
	EventPendingReminder  = "request.pending_reminder"
)

// Notifier delivers push notifications for lifecycle transitions.
// Delivery is best-effort and never fails the transition.
type Notifier interface {
	RequestCreated(ctx context.Context, request *Request)
	RequestAccepted(ctx context.Context, request *Request)
	RequestCompleted(ctx context.Context, request *Request)
	PendingReminder(ctx context.Context, request *Request)
}

// Broadcaster pushes lifecycle events to connected dashboards.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// AuditLog appends lifecycle transitions to an append-only journal.
type AuditLog interface {
	Append(ctx context.Context, stream, eventType string, payload interface{}) error
}

type RequestService interface {
	Create(ctx context.Context, actor Actor, req *CreateRequest) (*Request, error)
	Accept(ctx context.Context, actor Actor, id string) (*Request, error)
	Complete(ctx context.Context, actor Actor, id string) (*Request, error)
	GetByID(ctx context.Context, id string) (*Request, error)
	ByRequester(ctx context.Context, userID string) ([]*Request, error)
	ByStatus(ctx context.Context, status Status) ([]*Request, error)
	ByResponder(ctx context.Context, responderID string) ([]*Request, error)
	ActiveByResponder(ctx context.Context, responderID string) ([]*Request, error)
	RemindPending(ctx context.Context, olderThan time.Duration) error
}

type requestService struct {
	requestRepository RequestRepository
	notifier          Notifier
	broadcaster       Broadcaster
	auditLog          AuditLog
	logger            *zap.SugaredLogger
}

func NewRequestService(repo RequestRepository, notifier Notifier, broadcaster Broadcaster, auditLog AuditLog, logger *zap.SugaredLogger) RequestService {
	return &requestService{
		requestRepository: repo,
		notifier:          notifier,
		broadcaster:       broadcaster,
		auditLog:          auditLog,
		logger:            logger,
	}
}

// Create validates the submission and stores it as pending. The acting
// user becomes the requester; name is snapshotted onto the record.
func (s *requestService) Create(ctx context.Context, actor Actor, req *CreateRequest) (*Request, error) {

	if req.EmergencyType == "" {
		return nil, ErrTypeRequired
	}

	if req.Location == nil {
		return nil, ErrLocationRequired
	}

	if actor.ID == "" {
		return nil, errors.New("acting user is required")
	}

	now := time.Now()

	request := &Request{
		ID:            primitive.NewObjectID(),
		UserID:        actor.ID,
		UserName:      actor.Name,
		EmergencyType: req.EmergencyType,
		Message:       req.Message,
		Location:      *req.Location,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.requestRepository.Create(ctx, request); err != nil {
		return nil, err
	}

	s.afterTransition(ctx, EventRequestCreated, request)

	return request, nil
}

// Accept claims a pending request for the acting responder. The store
// transition matches on status pending, so of two racing responders
// exactly one wins; the loser gets ErrAlreadyAccepted.
func (s *requestService) Accept(ctx context.Context, actor Actor, id string) (*Request, error) {

	if actor.Role != user.RoleResponder {
		return nil, ErrResponderRole
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrRequestNotFound
	}

	request, err := s.requestRepository.AcceptPending(ctx, objID, actor.ID, actor.Name, time.Now())
	if err != nil {
		return nil, err
	}

	if request == nil {
		return nil, s.transitionFailure(ctx, objID, ErrAlreadyAccepted)
	}

	s.afterTransition(ctx, EventRequestAccepted, request)

	return request, nil
}

// Complete resolves an accepted request. Only the source status is
// checked; the original design lets any signed-in user close an
// accepted request.
func (s *requestService) Complete(ctx context.Context, actor Actor, id string) (*Request, error) {

	if actor.ID == "" {
		return nil, errors.New("acting user is required")
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrRequestNotFound
	}

	request, err := s.requestRepository.CompleteAccepted(ctx, objID, time.Now())
	if err != nil {
		return nil, err
	}

	if request == nil {
		return nil, s.transitionFailure(ctx, objID, ErrNotAccepted)
	}

	s.afterTransition(ctx, EventRequestCompleted, request)

	return request, nil
}

// transitionFailure distinguishes a lost race from a stale id. The
// original silently ignored updates to unknown ids; here both cases
// surface as explicit errors.
func (s *requestService) transitionFailure(ctx context.Context, id primitive.ObjectID, stateErr error) error {

	existing, err := s.requestRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRequestNotFound
	}
	return stateErr
}

func (s *requestService) GetByID(ctx context.Context, id string) (*Request, error) {

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrRequestNotFound
	}

	request, err := s.requestRepository.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}

	return request, nil
}

func (s *requestService) ByRequester(ctx context.Context, userID string) ([]*Request, error) {

	if userID == "" {
		return nil, errors.New("user id is required")
	}

	return s.requestRepository.FindByRequester(ctx, userID)
}

func (s *requestService) ByStatus(ctx context.Context, status Status) ([]*Request, error) {

	if !status.Valid() {
		return nil, errors.New("unknown status")
	}

	return s.requestRepository.FindByStatus(ctx, status)
}

func (s *requestService) ByResponder(ctx context.Context, responderID string) ([]*Request, error) {

	if responderID == "" {
		return nil, errors.New("responder id is required")
	}

	return s.requestRepository.FindByResponder(ctx, responderID)
}

func (s *requestService) ActiveByResponder(ctx context.Context, responderID string) ([]*Request, error) {

	if responderID == "" {
		return nil, errors.New("responder id is required")
	}

	return s.requestRepository.FindActiveByResponder(ctx, responderID)
}

// RemindPending re-pushes requests that crossed the age threshold since
// the previous sweep. The sweep runs once a minute, so the one-minute
// window reminds each request exactly once.
func (s *requestService) RemindPending(ctx context.Context, olderThan time.Duration) error {

	now := time.Now()
	to := now.Add(-olderThan)
	from := to.Add(-time.Minute)

	requests, err := s.requestRepository.FindPendingCreatedBetween(ctx, from, to)
	if err != nil {
		return err
	}

	for _, request := range requests {
		s.logger.Infof("Pending request %s unclaimed for %s, reminding responders", request.ID.Hex(), olderThan)
		if s.notifier != nil {
			s.notifier.PendingReminder(ctx, request)
		}
		if s.broadcaster != nil {
			s.broadcaster.Broadcast(EventPendingReminder, request)
		}
	}

	return nil
}

// afterTransition fans the transition out to push, realtime and audit.
// All three are best-effort: a failure is logged, never propagated.
func (s *requestService) afterTransition(ctx context.Context, event string, request *Request) {

	if s.notifier != nil {
		switch event {
		case EventRequestCreated:
			s.notifier.RequestCreated(ctx, request)
		case EventRequestAccepted:
			s.notifier.RequestAccepted(ctx, request)
		case EventRequestCompleted:
			s.notifier.RequestCompleted(ctx, request)
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(event, request)
	}

	if s.auditLog != nil {
		stream := "emergency-" + request.ID.Hex()
		if err := s.auditLog.Append(ctx, stream, event, request); err != nil {
			s.logger.Warnf("Failed to append %s to audit stream %s: %v", event, stream, err)
		}
	}
}
