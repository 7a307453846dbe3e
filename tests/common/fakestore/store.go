//go:build unit || e2e

// Package fakestore is an in-memory UnitOfWork. Transactions are serialized and rolled
// back with an undo log, and faults can be injected into the next statements.
package fakestore

import (
	"context"
	"slices"
	"sync"
	"time"

	"pos-checkout/internal/domain/catalog"
	"pos-checkout/internal/domain/order"
	"pos-checkout/internal/infra"
	"pos-checkout/internal/infra/db"
	"pos-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type Product struct {
	ID       int64
	Name     string
	Category string
	Size     string
	Price    int64
	Quantity int
}

type Order struct {
	ID             int64
	CreatedAt      time.Time
	Total          int64
	BuyerLabel     *string
	IdempotencyKey *uuid.UUID
	Items          []order.LineItem
}

type Store struct {
	mu sync.Mutex

	products    map[int64]Product
	orders      []Order
	nextOrderID int64

	// faults are returned by the next DecrementIfAvailable calls, oldest first
	faults       []error
	racingOrders []Order
	// failAt maps a 1-based DecrementIfAvailable call number to the error it returns
	failAt     map[int]error
	decrements int
	onBegin    func(begin int, stock map[int64]int)
	lockedKeys   []uuid.UUID

	begins    int
	commits   int
	rollbacks int
}

func New(products ...Product) *Store {
	s := &Store{products: make(map[int64]Product), nextOrderID: 1}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

// ContentionError is what Postgres reports for a lock timeout.
func ContentionError() error {
	return infra.WrapRepoErr("failed to decrement stock", &pgconn.PgError{Code: "55P03", Message: "canceling statement due to lock timeout"})
}

// DeadlockError is what Postgres reports when it aborts a deadlock victim.
func DeadlockError() error {
	return infra.WrapRepoErr("failed to decrement stock", &pgconn.PgError{Code: "40P01", Message: "deadlock detected"})
}

func StorageError() error {
	return infra.WrapRepoErr("failed to decrement stock", &pgconn.PgError{Code: "53100", Message: "could not extend file"})
}

// FailDecrements queues errors for the next DecrementIfAvailable calls.
func (s *Store) FailDecrements(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, errs...)
}

// FailDecrementAt makes the n-th DecrementIfAvailable call from now on fail with err,
// counting across transactions. Earlier decrements of the same attempt still apply.
func (s *Store) FailDecrementAt(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAt == nil {
		s.failAt = make(map[int]error)
	}
	s.failAt[s.decrements+n] = err
}

// OnBegin registers a hook that sees the committed stock as each transaction begins.
func (s *Store) OnBegin(fn func(begin int, stock map[int64]int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBegin = fn
}

// CommitBeforeNextCreate simulates another request with the same idempotency key winning
// the race between the key lookup and the insert.
func (s *Store) CommitBeforeNextCreate(key uuid.UUID, total int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.racingOrders = append(s.racingOrders, Order{IdempotencyKey: &key, Total: total, CreatedAt: time.Now()})
}

func (s *Store) Quantity(id int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p.Quantity, ok
}

func (s *Store) Product(id int64) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.orders)
}

// LockedKeys lists every idempotency key locked by a transaction, in order.
func (s *Store) LockedKeys() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lockedKeys)
}

type Stats struct {
	Begins    int
	Commits   int
	Rollbacks int
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Begins: s.begins, Commits: s.commits, Rollbacks: s.rollbacks}
}

// StockLevels reads committed quantities, so it also serves as a fresh pre-flight source.
func (s *Store) StockLevels(_ context.Context) (map[int64]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels(), nil
}

func (s *Store) levels() map[int64]int {
	levels := make(map[int64]int, len(s.products))
	for id, p := range s.products {
		levels[id] = p.Quantity
	}
	return levels
}

func (s *Store) FreshStockLevels(ctx context.Context) (map[int64]int, error) {
	return s.StockLevels(ctx)
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.begins++
	if s.onBegin != nil {
		s.onBegin(s.begins, s.levels())
	}

	tx := &fakeTx{s: s}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

// The read store under test ignores the handle, so nil is passed through.
func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTx struct {
	s    *Store
	undo []func()
}

func (t *fakeTx) Products() shared.ProductRepository { return &productRepo{tx: t} }
func (t *fakeTx) Orders() shared.OrderRepository     { return &orderRepo{tx: t} }

func (t *fakeTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

type productRepo struct{ tx *fakeTx }

func (r *productRepo) SnapshotByIDs(_ context.Context, ids []int64) (map[int64]order.ProductSnapshot, error) {
	out := make(map[int64]order.ProductSnapshot, len(ids))
	for _, id := range ids {
		if p, ok := r.tx.s.products[id]; ok {
			out[id] = order.ProductSnapshot{Name: p.Name, Size: p.Size}
		}
	}
	return out, nil
}

func (r *productRepo) DecrementIfAvailable(_ context.Context, id int64, qty int) (bool, error) {
	s := r.tx.s
	s.decrements++
	if err, ok := s.failAt[s.decrements]; ok {
		delete(s.failAt, s.decrements)
		return false, err
	}
	if len(s.faults) > 0 {
		err := s.faults[0]
		s.faults = s.faults[1:]
		return false, err
	}

	p, ok := s.products[id]
	if !ok || p.Quantity < qty {
		return false, nil
	}
	before := p
	p.Quantity -= qty
	s.products[id] = p
	r.tx.undo = append(r.tx.undo, func() { s.products[id] = before })
	return true, nil
}

func (r *productRepo) QuantityOf(_ context.Context, id int64) (int, error) {
	p, ok := r.tx.s.products[id]
	if !ok {
		return 0, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return p.Quantity, nil
}

func (r *productRepo) Upsert(_ context.Context, products []*catalog.Product) error {
	s := r.tx.s
	for _, p := range products {
		id := p.ID()
		before, existed := s.products[id]
		s.products[id] = Product{
			ID:       id,
			Name:     p.Name(),
			Category: p.Category(),
			Size:     p.Size(),
			Price:    p.Price().Minor(),
			Quantity: p.Quantity(),
		}
		r.tx.undo = append(r.tx.undo, func() {
			if existed {
				s.products[id] = before
			} else {
				delete(s.products, id)
			}
		})
	}
	return nil
}

func (r *productRepo) DeleteAll(_ context.Context) (int64, error) {
	s := r.tx.s
	before := s.products
	s.products = make(map[int64]Product)
	r.tx.undo = append(r.tx.undo, func() { s.products = before })
	return int64(len(before)), nil
}

func (r *productRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tx.s.products)), nil
}

type orderRepo struct{ tx *fakeTx }

func (r *orderRepo) Create(_ context.Context, o *order.Order) (int64, error) {
	s := r.tx.s

	if len(s.racingOrders) > 0 {
		// The racing order commits on its own, outside this transaction's undo log.
		winner := s.racingOrders[0]
		s.racingOrders = s.racingOrders[1:]
		winner.ID = s.nextOrderID
		s.nextOrderID++
		s.orders = append(s.orders, winner)
	}

	if key := o.IdempotencyKey(); key != nil {
		for _, existing := range s.orders {
			if existing.IdempotencyKey != nil && *existing.IdempotencyKey == *key {
				return 0, infra.WrapRepoErr("failed to insert order",
					&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
			}
		}
	}

	id := s.nextOrderID
	s.nextOrderID++
	s.orders = append(s.orders, Order{
		ID:             id,
		CreatedAt:      o.CreatedAt(),
		Total:          o.Total().Minor(),
		BuyerLabel:     o.BuyerLabel(),
		IdempotencyKey: o.IdempotencyKey(),
		Items:          slices.Clone(o.Items()),
	})
	n := len(s.orders)
	r.tx.undo = append(r.tx.undo, func() {
		s.orders = s.orders[:n-1]
		s.nextOrderID--
	})
	return id, nil
}

// Transactions are already serialized, so the lock is only recorded.
func (r *orderRepo) LockIdempotencyKey(_ context.Context, key uuid.UUID) error {
	r.tx.s.lockedKeys = append(r.tx.s.lockedKeys, key)
	return nil
}

func (r *orderRepo) FindByIdempotencyKey(_ context.Context, key uuid.UUID) (*shared.OrderRef, error) {
	for _, o := range r.tx.s.orders {
		if o.IdempotencyKey != nil && *o.IdempotencyKey == key {
			return &shared.OrderRef{ID: o.ID, Total: o.Total}, nil
		}
	}
	return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
}
