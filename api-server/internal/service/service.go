package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/scenario"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/tripflow"
	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// ErrScenarioNotFound is returned for unknown scenario IDs
var ErrScenarioNotFound = errors.New("scenario not found")

// Publisher pushes snapshots to connected clients
type Publisher interface {
	Publish(sessionID string, payload any)
}

// sessionCloser is implemented by publishers that hold per-session clients
type sessionCloser interface {
	CloseSession(sessionID string)
}

// TripService manages booking flow sessions
type TripService interface {
	CreateSession(ctx context.Context) (tripflow.Snapshot, error)
	GetSession(ctx context.Context, sessionID string) (tripflow.Snapshot, error)
	Dispatch(ctx context.Context, sessionID string, ev tripflow.Event) (tripflow.Snapshot, bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ListScenarios(ctx context.Context) []models.TripScenario
	ResolveScenario(ctx context.Context, query string) models.TripScenario
	GetScenario(ctx context.Context, id string) (models.TripScenario, error)
}

// Options configure the trip service
type Options struct {
	Delays        tripflow.Delays
	Scheduler     tripflow.Scheduler
	BookingRunner tripflow.StepRunner
	Publisher     Publisher
	IdleTTL       time.Duration
	Logger        *zap.Logger
}

type session struct {
	ctrl     *tripflow.Controller
	lastSeen time.Time
}

// SessionService is the in-memory TripService. A session lives until it is
// deleted or swept as idle.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*session
	store    *scenario.Store
	opts     Options
	runner   tripflow.StepRunner
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	now      func() time.Time
}

// NewTripService creates the service. Cancelling ctx tears down every session.
func NewTripService(ctx context.Context, store *scenario.Store, opts Options) *SessionService {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &SessionService{
		sessions: make(map[string]*session),
		store:    store,
		opts:     opts,
		runner:   tripflow.NewLocalRunner(opts.Scheduler),
		logger:   opts.Logger,
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
	}
}

func (s *SessionService) CreateSession(ctx context.Context) (tripflow.Snapshot, error) {
	id := uuid.New().String()

	ctrl := tripflow.NewController(s.ctx, tripflow.Options{
		SessionID:    id,
		Resolver:     s.store,
		Disruption:   scenario.Disruption(),
		Confirmation: scenario.Confirmation,
		Labels: tripflow.StepLabels{
			Approval: scenario.ApprovalSteps,
			Booking:  scenario.BookingSteps,
		},
		Delays:        s.opts.Delays,
		Runner:        s.runner,
		BookingRunner: s.opts.BookingRunner,
		OnChange:      s.publish,
		Logger:        s.logger,
	})

	s.mu.Lock()
	s.sessions[id] = &session{ctrl: ctrl, lastSeen: s.now()}
	s.mu.Unlock()

	s.logger.Info("session created", zap.String("session_id", id))
	return ctrl.Snapshot(), nil
}

func (s *SessionService) GetSession(ctx context.Context, sessionID string) (tripflow.Snapshot, error) {
	ctrl, err := s.touch(sessionID)
	if err != nil {
		return tripflow.Snapshot{}, err
	}
	return ctrl.Snapshot(), nil
}

func (s *SessionService) Dispatch(ctx context.Context, sessionID string, ev tripflow.Event) (tripflow.Snapshot, bool, error) {
	ctrl, err := s.touch(sessionID)
	if err != nil {
		return tripflow.Snapshot{}, false, err
	}
	snap, accepted := ctrl.Dispatch(ev)
	return snap, accepted, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	sess.ctrl.Close()
	s.logger.Info("session deleted", zap.String("session_id", sessionID))
	return nil
}

func (s *SessionService) ListScenarios(ctx context.Context) []models.TripScenario {
	return s.store.List()
}

func (s *SessionService) ResolveScenario(ctx context.Context, query string) models.TripScenario {
	return s.store.Resolve(query)
}

func (s *SessionService) GetScenario(ctx context.Context, id string) (models.TripScenario, error) {
	sc, ok := s.store.Get(id)
	if !ok {
		return models.TripScenario{}, ErrScenarioNotFound
	}
	return sc, nil
}

// SweepIdle closes sessions not touched for longer than the idle TTL and
// returns how many were removed
func (s *SessionService) SweepIdle() int {
	if s.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.opts.IdleTTL)

	var stale []*session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	closer, _ := s.opts.Publisher.(sessionCloser)
	for _, sess := range stale {
		sess.ctrl.Close()
		if closer != nil {
			closer.CloseSession(sess.ctrl.ID())
		}
	}
	if len(stale) > 0 {
		s.logger.Info("idle sessions removed", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// RunJanitor sweeps idle sessions every interval until ctx is done
func (s *SessionService) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepIdle()
		}
	}
}

// Close tears down every session
func (s *SessionService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.ctrl.Close()
	}
	s.cancel()
}

// SessionCount returns the number of live sessions
func (s *SessionService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionService) touch(sessionID string) (*tripflow.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess.ctrl, nil
}

func (s *SessionService) publish(snap tripflow.Snapshot) {
	if s.opts.Publisher != nil {
		s.opts.Publisher.Publish(snap.SessionID, snap)
	}
}
