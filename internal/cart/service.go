package cart

import (
	"context"
	"sync"

	"github.com/gelaboca/gelaboca-backend/pkg/logger"
)

// Archiver records placed orders for the staff views. The cart treats it as
// best-effort: a failing archive never blocks the customer.
type Archiver interface {
	ArchiveOrder(ctx context.Context, sessionID string, state State) error
	FlagCancellation(ctx context.Context, sessionID, productID string) error
}

// Service applies cart transitions for a session and persists the result.
// Transitions for the same session are serialized so concurrent requests
// cannot interleave their load/apply/save cycles.
type Service struct {
	store    Store
	archiver Archiver
	logg     *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService builds the cart service. archiver may be nil when order
// archiving is disabled.
func NewService(store Store, archiver Archiver, logg *logger.Logger) *Service {
	return &Service{
		store:    store,
		archiver: archiver,
		logg:     logg,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Get returns the current cart for the session.
func (s *Service) Get(ctx context.Context, sessionID string) (State, error) {
	return s.store.Load(ctx, sessionID)
}

// AddItem adds a line or bumps its quantity.
func (s *Service) AddItem(ctx context.Context, sessionID string, item Item) (State, error) {
	return s.apply(ctx, sessionID, AddItem(item))
}

// RemoveItem drops a line unless it belongs to a placed order.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (State, error) {
	return s.apply(ctx, sessionID, RemoveItem(productID))
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (State, error) {
	return s.apply(ctx, sessionID, UpdateQuantity(productID, quantity))
}

// Clear removes every editable line.
func (s *Service) Clear(ctx context.Context, sessionID string) (State, error) {
	return s.apply(ctx, sessionID, ClearCart())
}

// Finalize places the current order and archives it for the staff.
func (s *Service) Finalize(ctx context.Context, sessionID string) (State, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return NewState(), err
	}

	next := Apply(state, FinalizeOrder())
	s.persist(ctx, sessionID, next)

	if s.archiver != nil && len(next.Items) > 0 {
		if err := s.archiver.ArchiveOrder(ctx, sessionID, next); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "order archive failed")
		}
	}
	return next, nil
}

// RequestCancellation marks a finalized line for staff cancellation.
func (s *Service) RequestCancellation(ctx context.Context, sessionID, productID string) (State, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return NewState(), err
	}

	next := Apply(state, RequestCancellation(productID))
	s.persist(ctx, sessionID, next)

	if s.archiver != nil && next.IsCancelled(productID) {
		if err := s.archiver.FlagCancellation(ctx, sessionID, productID); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cancellation flag failed")
		}
	}
	return next, nil
}

// StartNewOrder resets the session to an empty cart and erases storage.
func (s *Service) StartNewOrder(ctx context.Context, sessionID string) (State, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	if err := s.store.Erase(ctx, sessionID); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart erase failed")
	}
	return NewState(), nil
}

func (s *Service) apply(ctx context.Context, sessionID string, cmd Command) (State, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return NewState(), err
	}

	next := Apply(state, cmd)
	s.persist(ctx, sessionID, next)
	return next, nil
}

// persist is best-effort: the response still reflects the applied transition
// even when the write fails, matching the forgiving behavior of the tablet UI.
func (s *Service) persist(ctx context.Context, sessionID string, state State) {
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart persist failed")
	}
}

func (s *Service) lockSession(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
