package memory

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/phrazzld/patient-api/internal/domain"
	"github.com/phrazzld/patient-api/internal/events"
	"github.com/phrazzld/patient-api/internal/platform/logger"
	"github.com/phrazzld/patient-api/internal/store"
)

// Store is an in-memory store.RecordStore.
//
// Records are kept in insertion order with an ID index alongside. Mutations
// take the write lock, reads take the read lock, and records are cloned on
// the way in and out.
type Store[R any] struct {
	schema store.Schema[R]
	policy store.IDPolicy
	logger *slog.Logger
	events events.EventEmitter

	mu      sync.RWMutex
	records []R
	index   map[int]int // id -> position in records
	seq     uint64      // bumped under mu on every committed change
}

// Compile-time checks that Store implements the record store interfaces.
var (
	_ store.PatientStore = (*Store[domain.Patient])(nil)
	_ store.BookStore    = (*Store[domain.Book])(nil)
	_ store.ItemStore    = (*Store[domain.Item])(nil)
)

// Option configures a Store.
type Option func(*options)

type options struct {
	events events.EventEmitter
}

// WithEventEmitter publishes a RecordEvent for every committed change.
func WithEventEmitter(e events.EventEmitter) Option {
	return func(o *options) { o.events = e }
}

// NewStore creates an empty store for the given schema and ID policy.
func NewStore[R any](schema store.Schema[R], policy store.IDPolicy, logger *slog.Logger, opts ...Option) *Store[R] {
	if logger == nil {
		logger = slog.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[R]{
		schema: schema,
		policy: policy,
		logger: logger.With(slog.String("component", schema.Entity+"_store")),
		events: o.events,
		index:  make(map[int]int),
	}
}

// NewPatientStore creates an empty in-memory patient store.
func NewPatientStore(policy store.IDPolicy, logger *slog.Logger, opts ...Option) *Store[domain.Patient] {
	return NewStore(store.PatientSchema, policy, logger, opts...)
}

// NewBookStore creates an empty in-memory book store.
func NewBookStore(policy store.IDPolicy, logger *slog.Logger, opts ...Option) *Store[domain.Book] {
	return NewStore(store.BookSchema, policy, logger, opts...)
}

// NewItemStore creates an empty in-memory item store.
func NewItemStore(policy store.IDPolicy, logger *slog.Logger, opts ...Option) *Store[domain.Item] {
	return NewStore(store.ItemSchema, policy, logger, opts...)
}

// Policy returns the store's ID policy.
func (s *Store[R]) Policy() store.IDPolicy {
	return s.policy
}

// Create implements store.RecordStore.Create.
func (s *Store[R]) Create(ctx context.Context, record R) (R, error) {
	created, seq, err := s.create(ctx, record)
	if err != nil {
		return created, err
	}
	s.emit(ctx, seq, events.ActionCreated, s.schema.ID(created), created)
	return created, nil
}

func (s *Store[R]) create(ctx context.Context, record R) (R, uint64, error) {
	var zero R
	log := logger.FromContextOrDefault(ctx, s.logger)

	candidate := s.schema.Clone(record)

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.schema.ID(candidate)
	if id == 0 && s.policy == store.IDPolicySequential {
		next, ok := s.nextIDLocked()
		if !ok {
			log.Warn("sequential ids exhausted", slog.String("entity", s.schema.Entity))
			return zero, 0, domain.NewValidationError("id",
				"cannot be assigned: sequential ids are exhausted, supply an unused id",
				domain.ErrInvalidID)
		}
		id = next
		candidate = s.schema.WithID(candidate, id)
	}

	if err := s.validateLocked(id, candidate); err != nil {
		log.Debug("rejected invalid record",
			slog.String("entity", s.schema.Entity),
			slog.Int("id", id))
		return zero, 0, err
	}

	if _, exists := s.index[id]; exists {
		log.Debug("rejected duplicate record",
			slog.String("entity", s.schema.Entity),
			slog.Int("id", id))
		return zero, 0, store.NewStoreError(
			s.schema.Entity,
			"create",
			fmt.Sprintf("id %d already exists", id),
			s.schema.Duplicate,
		)
	}

	s.index[id] = len(s.records)
	s.records = append(s.records, candidate)
	s.seq++

	log.Debug("record created",
		slog.String("entity", s.schema.Entity),
		slog.Int("id", id),
		slog.Int("count", len(s.records)))
	return s.schema.Clone(candidate), s.seq, nil
}

// List implements store.RecordStore.List.
func (s *Store[R]) List(ctx context.Context) ([]R, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]R, len(s.records))
	for i, r := range s.records {
		out[i] = s.schema.Clone(r)
	}
	return out, nil
}

// Get implements store.RecordStore.Get.
func (s *Store[R]) Get(ctx context.Context, id int) (R, error) {
	var zero R

	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return zero, s.notFound("get", id)
	}
	return s.schema.Clone(s.records[pos]), nil
}

// Update implements store.RecordStore.Update.
func (s *Store[R]) Update(ctx context.Context, id int, patch store.Patch[R]) (R, error) {
	updated, seq, err := s.update(ctx, id, patch)
	if err != nil {
		return updated, err
	}
	s.emit(ctx, seq, events.ActionUpdated, id, updated)
	return updated, nil
}

func (s *Store[R]) update(ctx context.Context, id int, patch store.Patch[R]) (R, uint64, error) {
	var zero R
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return zero, 0, s.notFound("update", id)
	}

	next := s.schema.Clone(s.records[pos])
	if patch != nil {
		next = patch.Apply(next)
	}
	// The ID is immutable whatever the patch did.
	next = s.schema.WithID(next, id)

	if err := s.schema.Validate(next); err != nil {
		log.Debug("rejected invalid update",
			slog.String("entity", s.schema.Entity),
			slog.Int("id", id))
		return zero, 0, err
	}

	s.records[pos] = next
	s.seq++

	log.Debug("record updated",
		slog.String("entity", s.schema.Entity),
		slog.Int("id", id))
	return s.schema.Clone(next), s.seq, nil
}

// Delete implements store.RecordStore.Delete.
func (s *Store[R]) Delete(ctx context.Context, id int) error {
	seq, err := s.delete(ctx, id)
	if err != nil {
		return err
	}
	s.emit(ctx, seq, events.ActionDeleted, id, nil)
	return nil
}

func (s *Store[R]) delete(ctx context.Context, id int) (uint64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return 0, s.notFound("delete", id)
	}

	s.records = append(s.records[:pos], s.records[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.records); i++ {
		s.index[s.schema.ID(s.records[i])] = i
	}
	s.seq++

	log.Debug("record deleted",
		slog.String("entity", s.schema.Entity),
		slog.Int("id", id),
		slog.Int("count", len(s.records)))
	return s.seq, nil
}

// Len implements store.RecordStore.Len.
func (s *Store[R]) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// validateLocked checks the ID against the policy and then the record's
// declared constraints. ID diagnostics come first so a client sees them even
// when other fields are also wrong.
func (s *Store[R]) validateLocked(id int, record R) error {
	var verr *domain.ValidationError
	switch {
	case id == 0:
		verr = domain.NewValidationError("id", "is required", domain.ErrInvalidID)
	case id < 0:
		verr = domain.NewValidationError("id", "must be greater than 0", domain.ErrInvalidID)
	}

	err := s.schema.Validate(record)
	if verr == nil {
		return err
	}
	if recordErr, ok := err.(*domain.ValidationError); ok {
		for _, fe := range recordErr.Errors {
			if fe.Field != "id" {
				verr.Add(fe.Field, fe.Message)
			}
		}
	}
	return verr
}

// nextIDLocked returns max(id)+1, or 1 for an empty store. It reports false
// when a stored id already sits at math.MaxInt.
func (s *Store[R]) nextIDLocked() (int, bool) {
	maxID := 0
	for id := range s.index {
		if id > maxID {
			maxID = id
		}
	}
	if maxID == math.MaxInt {
		return 0, false
	}
	return maxID + 1, true
}

// emit publishes a change after the lock is released, so handlers may see
// concurrent changes out of order; seq is the commit order. Handler failures
// are logged; the change itself is already committed.
func (s *Store[R]) emit(ctx context.Context, seq uint64, action events.Action, id int, record any) {
	if s.events == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewRecordEvent(s.schema.Entity, action, id, record)
	if err != nil {
		log.Error("failed to build record event",
			slog.String("entity", s.schema.Entity),
			slog.String("action", string(action)),
			slog.Int("id", id),
			slog.String("error", err.Error()))
		return
	}
	event.Sequence = seq
	if err := s.events.EmitEvent(ctx, event); err != nil {
		log.Warn("record event handler failed",
			slog.String("entity", s.schema.Entity),
			slog.String("action", string(action)),
			slog.Int("id", id),
			slog.String("error", err.Error()))
	}
}

func (s *Store[R]) notFound(operation string, id int) error {
	return store.NewStoreError(
		s.schema.Entity,
		operation,
		fmt.Sprintf("id %d", id),
		s.schema.NotFound,
	)
}
