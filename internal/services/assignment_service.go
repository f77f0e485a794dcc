package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/errors"
	"assignment-tracker/internal/repository"
	"assignment-tracker/internal/validation"
)

// AssignmentStore owns the assignment collection and keeps it in sync with
// the key-value store. Every mutation rewrites the whole collection under
// repository.KeyAssignments; a failed write rolls the mutation back.
// While the last read from storage failed, nothing is written back.
type AssignmentStore struct {
	mu          sync.Mutex
	kv          repository.KeyValueStore
	logger      *zap.Logger
	validator   *validation.AssignmentValidator
	mapper      *domain.AssignmentMapper
	clock       Clock
	newID       func() string
	assignments []domain.Assignment
	loadErr     error
}

// StoreOption configures an AssignmentStore
type StoreOption func(*AssignmentStore)

// WithLogger sets the logger used for load warnings and debug output
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *AssignmentStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithValidator replaces the default input validator
func WithValidator(validator *validation.AssignmentValidator) StoreOption {
	return func(s *AssignmentStore) {
		if validator != nil {
			s.validator = validator
		}
	}
}

// WithClock sets the source of creation timestamps
func WithClock(clock Clock) StoreOption {
	return func(s *AssignmentStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator replaces the UUID generator
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *AssignmentStore) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewAssignmentStore creates a store and loads the persisted collection.
func NewAssignmentStore(ctx context.Context, kv repository.KeyValueStore, opts ...StoreOption) *AssignmentStore {
	s := &AssignmentStore{
		kv:        kv,
		logger:    zap.NewNop(),
		validator: validation.NewAssignmentValidator(),
		mapper:    domain.NewAssignmentMapper(),
		clock:     time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load(ctx)
	return s
}

// Load re-reads the collection from storage and returns a copy of it.
// A missing key or malformed data yields an empty collection. A failed read
// also yields an empty view, but the store stays unloaded: reads by id and
// every mutation retry the load and report the storage error if it fails again.
func (s *AssignmentStore) Load(ctx context.Context) []domain.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reload(ctx)
	return domain.CloneAll(s.assignments)
}

// reload replaces the collection with the stored one. Callers hold s.mu.
func (s *AssignmentStore) reload(ctx context.Context) {
	assignments, err := s.read(ctx)
	if err != nil {
		s.logger.Warn("failed to read saved assignments",
			zap.String("key", repository.KeyAssignments), zap.Error(err))
		s.assignments = []domain.Assignment{}
		s.loadErr = err
		return
	}
	s.assignments = assignments
	s.loadErr = nil
}

// ensureLoaded retries a failed load. Callers hold s.mu.
func (s *AssignmentStore) ensureLoaded(ctx context.Context) error {
	if s.loadErr == nil {
		return nil
	}
	s.reload(ctx)
	if s.loadErr == nil {
		return nil
	}
	return s.loadFailure()
}

func (s *AssignmentStore) loadFailure() error {
	if errors.IsAppError(s.loadErr) {
		return s.loadErr
	}
	return errors.NewDatabaseError("load assignments", s.loadErr)
}

// read returns an error only when storage itself fails.
func (s *AssignmentStore) read(ctx context.Context) ([]domain.Assignment, error) {
	value, found, err := s.kv.Get(ctx, repository.KeyAssignments)
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.Assignment{}, nil
	}

	records, err := repository.DecodeRecords(value)
	if err != nil {
		derr := errors.NewDeserializationError(repository.KeyAssignments, err)
		s.logger.Warn("saved assignments are malformed, starting empty", zap.Error(derr))
		return []domain.Assignment{}, nil
	}

	s.logger.Debug("loaded assignments", zap.Int("count", len(records)))
	return s.mapper.FromRecords(records), nil
}

// persist writes the current collection. Callers hold s.mu.
func (s *AssignmentStore) persist(ctx context.Context) error {
	if s.loadErr != nil {
		return s.loadFailure()
	}
	value, err := repository.EncodeRecords(s.mapper.ToRecords(s.assignments))
	if err != nil {
		return errors.NewDatabaseError("encode assignments", err)
	}
	if err := s.kv.Set(ctx, repository.KeyAssignments, value); err != nil {
		if errors.IsAppError(err) {
			return err
		}
		return errors.NewDatabaseError("save assignments", err)
	}
	return nil
}

// Add validates input, appends a new incomplete assignment and persists.
// Invalid input returns a validation error wrapping *validation.ValidationError
// and leaves the collection untouched.
func (s *AssignmentStore) Add(ctx context.Context, input domain.AssignmentInput) (*domain.Assignment, error) {
	if verr := s.validator.ValidateInput(input); verr != nil {
		return nil, errors.NewValidationError(verr.UserMessage(), verr)
	}
	input = s.validator.Clean(input)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	assignment := domain.Assignment{
		ID:          s.uniqueID(),
		Name:        input.Name,
		DueDate:     input.DueDate,
		Subject:     input.Subject,
		Priority:    domain.Priority(input.Priority),
		Description: input.Description,
		Grade:       input.Grade,
		Completed:   false,
		CreatedAt:   s.clock(),
	}

	previous := s.assignments
	s.assignments = append(domain.CloneAll(previous), assignment)
	if err := s.persist(ctx); err != nil {
		s.assignments = previous
		return nil, err
	}

	s.logger.Debug("added assignment", zap.String("id", assignment.ID))
	created := assignment.Clone()
	return &created, nil
}

func (s *AssignmentStore) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

// ToggleComplete flips the completed flag of the assignment with id.
func (s *AssignmentStore) ToggleComplete(ctx context.Context, id string) (*domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.NewNotFoundError("assignment", id)
	}

	s.assignments[idx].Completed = !s.assignments[idx].Completed
	if err := s.persist(ctx); err != nil {
		s.assignments[idx].Completed = !s.assignments[idx].Completed
		return nil, err
	}

	toggled := s.assignments[idx].Clone()
	return &toggled, nil
}

// Delete removes the assignment with id. Deleting an unknown id is a no-op.
func (s *AssignmentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	previous := s.assignments
	remaining := make([]domain.Assignment, 0, len(previous)-1)
	remaining = append(remaining, previous[:idx]...)
	remaining = append(remaining, previous[idx+1:]...)
	s.assignments = remaining
	if err := s.persist(ctx); err != nil {
		s.assignments = previous
		return err
	}

	s.logger.Debug("deleted assignment", zap.String("id", id))
	return nil
}

// ReplaceOrder reorders the collection to match ordered. ordered must hold
// each current id exactly once; only ids are read from it, field values always
// come from the store's own records.
func (s *AssignmentStore) ReplaceOrder(ctx context.Context, ordered []domain.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	return s.replaceOrder(ctx, ordered)
}

func (s *AssignmentStore) replaceOrder(ctx context.Context, ordered []domain.Assignment) error {
	if len(ordered) != len(s.assignments) {
		return errors.NewInvalidInputError("order", len(ordered),
			fmt.Sprintf("expected %d assignments", len(s.assignments)))
	}

	byID := make(map[string]domain.Assignment, len(s.assignments))
	for _, a := range s.assignments {
		byID[a.ID] = a
	}

	reordered := make([]domain.Assignment, 0, len(ordered))
	for _, a := range ordered {
		current, ok := byID[a.ID]
		if !ok {
			return errors.NewInvalidInputError("order", a.ID, "unknown or repeated assignment id")
		}
		delete(byID, a.ID)
		reordered = append(reordered, current)
	}

	previous := s.assignments
	s.assignments = reordered
	if err := s.persist(ctx); err != nil {
		s.assignments = previous
		return err
	}
	return nil
}

// Sort orders the collection by strategy, persists the new order and returns it.
func (s *AssignmentStore) Sort(ctx context.Context, strategy domain.SortStrategy) ([]domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	sorted, err := SortAssignments(s.assignments, strategy)
	if err != nil {
		return nil, err
	}
	if err := s.replaceOrder(ctx, sorted); err != nil {
		return nil, err
	}
	return domain.CloneAll(s.assignments), nil
}

// List returns a deep copy of the collection in its current order.
func (s *AssignmentStore) List() []domain.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneAll(s.assignments)
}

// Get returns a copy of the assignment with exactly id.
func (s *AssignmentStore) Get(id string) (*domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadFailure()
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.NewNotFoundError("assignment", id)
	}
	found := s.assignments[idx].Clone()
	return &found, nil
}

// Resolve finds an assignment by full id or by a unique id prefix such as the
// short id shown in listings.
func (s *AssignmentStore) Resolve(idOrPrefix string) (*domain.Assignment, error) {
	if verr := s.validator.ValidateID(idOrPrefix); verr != nil {
		return nil, errors.NewValidationError(verr.UserMessage(), verr)
	}
	key := strings.ToLower(strings.TrimSpace(idOrPrefix))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadFailure()
	}

	if idx := s.indexOf(key); idx >= 0 {
		found := s.assignments[idx].Clone()
		return &found, nil
	}

	var matches []int
	for i, a := range s.assignments {
		if strings.HasPrefix(strings.ToLower(a.ID), key) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.NewNotFoundError("assignment", idOrPrefix)
	case 1:
		found := s.assignments[matches[0]].Clone()
		return &found, nil
	default:
		return nil, errors.NewInvalidInputError("id", idOrPrefix,
			fmt.Sprintf("prefix matches %d assignments", len(matches)))
	}
}

func (s *AssignmentStore) indexOf(id string) int {
	for i, a := range s.assignments {
		if a.ID == id {
			return i
		}
	}
	return -1
}
