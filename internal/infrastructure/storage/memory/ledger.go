// Package memory provides an in-memory storage engine implementing
// tx.Manager and ledger.Repository. It mirrors the postgres engine's
// locking behavior with per-product mutexes held until commit or
// rollback, so the movement pipeline can be unit tested with real
// transaction semantics and no database.
package memory

import (
	"context"
	"sync"
	"time"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
	"stockledger/internal/core/tx"
	"stockledger/internal/domain/ledger"
)

// Store is the in-memory ledger storage engine.
type Store struct {
	mu        sync.Mutex
	locks     map[id.ID]chan struct{}
	balances  map[id.ID]*ledger.StockBalance
	movements []*ledger.StockMovement

	// LockTimeout bounds the wait for a product lock, mirroring the
	// postgres lock_timeout. Expiry surfaces as CONCURRENCY_ERROR.
	LockTimeout time.Duration
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		locks:       make(map[id.ID]chan struct{}),
		balances:    make(map[id.ID]*ledger.StockBalance),
		LockTimeout: 2 * time.Second,
	}
}

// txState buffers writes of one open transaction and tracks the
// product locks it holds.
type txState struct {
	held      []chan struct{}
	balances  map[id.ID]*ledger.StockBalance
	movements []*ledger.StockMovement
}

type txStateKey struct{}

func getTxState(ctx context.Context) *txState {
	if s, ok := ctx.Value(txStateKey{}).(*txState); ok {
		return s
	}
	return nil
}

// RunInTransaction executes fn with buffered writes. On success the
// buffer is applied atomically; on error it is discarded. Product
// locks acquired by GetBalanceForUpdate are held either way until the
// transaction ends. Nested calls reuse the open transaction.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if getTxState(ctx) != nil {
		return fn(ctx)
	}

	state := &txState{balances: make(map[id.ID]*ledger.StockBalance)}
	txCtx := context.WithValue(ctx, txStateKey{}, state)

	err := fn(txCtx)

	s.mu.Lock()
	if err == nil {
		for pid, b := range state.balances {
			copied := *b
			s.balances[pid] = &copied
		}
		s.movements = append(s.movements, state.movements...)
	}
	s.mu.Unlock()

	for _, lock := range state.held {
		<-lock
	}
	return err
}

// lock acquires the per-product channel lock with a bounded wait.
func (s *Store) lock(ctx context.Context, productID id.ID) (chan struct{}, error) {
	s.mu.Lock()
	ch, ok := s.locks[productID]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[productID] = ch
	}
	s.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return ch, nil
	case <-time.After(s.LockTimeout):
		return nil, apperror.NewConcurrency("stock_balance", productID)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GetBalanceForUpdate locks the product and returns its balance,
// creating a zero balance for products that never moved. Must run
// inside RunInTransaction.
func (s *Store) GetBalanceForUpdate(ctx context.Context, productID id.ID) (*ledger.StockBalance, error) {
	state := getTxState(ctx)
	if state == nil {
		return nil, apperror.NewInternal(nil).WithDetail("reason", "GetBalanceForUpdate outside transaction")
	}

	// Already read in this transaction: the lock is held, return the
	// buffered row.
	if b, ok := state.balances[productID]; ok {
		return b, nil
	}

	lock, err := s.lock(ctx, productID)
	if err != nil {
		return nil, err
	}
	state.held = append(state.held, lock)

	s.mu.Lock()
	var balance ledger.StockBalance
	if committed, ok := s.balances[productID]; ok {
		balance = *committed
	} else {
		balance = ledger.StockBalance{ProductID: productID}
	}
	s.mu.Unlock()

	state.balances[productID] = &balance
	return &balance, nil
}

// SaveBalance buffers the balance write until commit.
func (s *Store) SaveBalance(ctx context.Context, b *ledger.StockBalance) error {
	state := getTxState(ctx)
	if state == nil {
		return apperror.NewInternal(nil).WithDetail("reason", "SaveBalance outside transaction")
	}
	state.balances[b.ProductID] = b
	return nil
}

// InsertMovement buffers the journal row until commit.
func (s *Store) InsertMovement(ctx context.Context, m *ledger.StockMovement) error {
	state := getTxState(ctx)
	if state == nil {
		return apperror.NewInternal(nil).WithDetail("reason", "InsertMovement outside transaction")
	}
	state.movements = append(state.movements, m)
	return nil
}

// GetBalance reads the committed balance without locking.
func (s *Store) GetBalance(ctx context.Context, productID id.ID) (*ledger.StockBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.balances[productID]; ok {
		copied := *b
		return &copied, nil
	}
	return &ledger.StockBalance{ProductID: productID}, nil
}

// ListMovements returns committed journal rows, newest first.
func (s *Store) ListMovements(ctx context.Context, filter ledger.MovementFilter) ([]*ledger.StockMovement, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*ledger.StockMovement
	for i := len(s.movements) - 1; i >= 0; i-- {
		m := s.movements[i]
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.MovementType != nil && m.MovementType != *filter.MovementType {
			continue
		}
		matched = append(matched, m)
	}

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

// Ensure interface compliance.
var (
	_ tx.Manager        = (*Store)(nil)
	_ ledger.Repository = (*Store)(nil)
)
