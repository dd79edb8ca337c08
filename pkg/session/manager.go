package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/kdvornichenko/birthday/internal/logging"
	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/form"
	"github.com/kdvornichenko/birthday/pkg/observability"
	"github.com/kdvornichenko/birthday/pkg/ports"
	"github.com/kdvornichenko/birthday/pkg/schema"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	schema  *schema.Schema
	store   ports.ResponseStore
	courier ports.Courier

	mu    sync.Mutex            // Global lock for the maps
	locks map[string]*lockEntry // Map of active locks

	// inFlight marks sessions with an outstanding delivery. A session in
	// this set rejects further Submit calls until the delivery settles.
	inFlight map[string]bool

	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMetrics records pipeline metrics on the given instruments.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// NewManager creates a session manager over the given schema, store and
// courier.
func NewManager(s *schema.Schema, store ports.ResponseStore, courier ports.Courier, opts ...Option) *Manager {
	m := &Manager{
		schema:   s,
		store:    store,
		courier:  courier,
		locks:    make(map[string]*lockEntry),
		inFlight: make(map[string]bool),
		logger:   logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// withLock executes a function while holding the lock for the session.
func (m *Manager) withLock(sessionID string, fn func() error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()
	return fn()
}

// Schema returns the questionnaire definition the manager serves.
func (m *Manager) Schema() *schema.Schema {
	return m.schema
}

// Start creates a new session initialized with the schema defaults and
// persists it.
func (m *Manager) Start(ctx context.Context) (*domain.Response, error) {
	id := uuid.NewString()
	resp := domain.NewResponse(id, m.schema.Defaults())

	err := m.withLock(id, func() error {
		return m.store.Save(ctx, id, resp)
	})
	if err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}

	m.metrics.SessionStarted()
	m.logger.Info("session started", "session_id", id)
	return resp, nil
}

// Get returns the current state of a session.
func (m *Manager) Get(ctx context.Context, sessionID string) (*domain.Response, error) {
	var resp *domain.Response
	err := m.withLock(sessionID, func() error {
		var err error
		resp, err = m.store.Load(ctx, sessionID)
		return err
	})
	return resp, err
}

// SetField applies one field edit and persists the updated answers. The
// value semantics follow the field kind (see form.Apply).
func (m *Manager) SetField(ctx context.Context, sessionID, fieldID, value string) (*domain.Response, error) {
	var resp *domain.Response
	err := m.withLock(sessionID, func() error {
		var err error
		resp, err = m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}

		answers, err := form.Apply(m.schema, resp.Answers, fieldID, value)
		if err != nil {
			return err
		}
		resp.Answers = answers
		resp.UpdatedAt = time.Now().UTC()

		return m.store.Save(ctx, sessionID, resp)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// SubmitResult is the outcome of one submission attempt. When Problems is
// non-empty the attempt failed validation and nothing was delivered; the
// response is otherwise current, with its notice reflecting the delivery.
type SubmitResult struct {
	Response *domain.Response
	Problems domain.ValidationResult
}

// Submit runs the submission pipeline for a session: validate the current
// answers, compose the message, deliver it, and record the outcome on the
// notice.
//
// Validation runs from scratch on every attempt. Delivery happens outside
// the session lock so slow endpoints do not block field edits; the
// in-flight guard guarantees at most one outstanding delivery per session,
// and a Submit during one returns domain.ErrSubmissionInFlight.
func (m *Manager) Submit(ctx context.Context, sessionID string) (*SubmitResult, error) {
	// Phase 1: under the lock, validate and compose, then claim the
	// in-flight slot.
	var message string
	result := &SubmitResult{}
	err := m.withLock(sessionID, func() error {
		m.mu.Lock()
		busy := m.inFlight[sessionID]
		m.mu.Unlock()
		if busy {
			return domain.ErrSubmissionInFlight
		}

		resp, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		result.Response = resp

		// A new attempt supersedes any notification still on screen.
		if resp.Notice.Status != domain.NoticeIdle {
			if err := resp.Notice.Dismiss(); err != nil {
				return err
			}
			if err := m.store.Save(ctx, sessionID, resp); err != nil {
				return err
			}
		}

		if problems := form.Validate(m.schema, resp.Answers); len(problems) > 0 {
			result.Problems = problems
			return nil
		}

		message = form.Compose(m.schema, resp.Answers)

		m.mu.Lock()
		m.inFlight[sessionID] = true
		m.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(result.Problems) > 0 {
		m.metrics.SubmissionRejected()
		m.logger.Info("submission rejected", "session_id", sessionID, "problems", len(result.Problems))
		return result, nil
	}

	// Phase 2: deliver without holding the session lock.
	m.metrics.SubmissionStarted()
	start := time.Now()
	deliverErr := m.courier.Deliver(ctx, message)
	m.metrics.DeliveryObserved(time.Since(start))

	outcome := domain.Delivered()
	if deliverErr != nil {
		outcome = domain.Failed(deliverErr.Error())
	}

	// Phase 3: record the outcome and release the in-flight slot.
	err = m.withLock(sessionID, func() error {
		defer func() {
			m.mu.Lock()
			delete(m.inFlight, sessionID)
			m.mu.Unlock()
		}()

		resp, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := resp.Notice.Complete(outcome); err != nil {
			return err
		}
		resp.UpdatedAt = time.Now().UTC()
		if err := m.store.Save(ctx, sessionID, resp); err != nil {
			return err
		}
		result.Response = resp
		return nil
	})
	if err != nil {
		m.metrics.SubmissionFinished(string(domain.DeliveryFailed))
		return nil, err
	}

	m.metrics.SubmissionFinished(string(outcome.Status))
	if outcome.Status == domain.DeliveryFailed {
		m.logger.Warn("delivery failed", "session_id", sessionID, "err", outcome.Diagnostic)
	} else {
		m.logger.Info("delivered", "session_id", sessionID)
	}
	return result, nil
}

// Dismiss returns the session's notice to idle.
func (m *Manager) Dismiss(ctx context.Context, sessionID string) (*domain.Response, error) {
	var resp *domain.Response
	err := m.withLock(sessionID, func() error {
		var err error
		resp, err = m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := resp.Notice.Dismiss(); err != nil {
			return err
		}
		resp.UpdatedAt = time.Now().UTC()
		return m.store.Save(ctx, sessionID, resp)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.withLock(sessionID, func() error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// InFlight reports whether the session has an outstanding delivery.
func (m *Manager) InFlight(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight[sessionID]
}
