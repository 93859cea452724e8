// Package state holds the single authoritative in-memory view of sellers,
// products and orders. All reads are served from memory, writes mutate memory
// synchronously, and the collections are lazily replicated to a SQLite file
// using a full-replace strategy: every N writes the three tables are cleared
// and rewritten in one transaction. Account creation replicates immediately,
// and Close forces one final replication.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/TemirB/storefront/internal/domain"
	"github.com/TemirB/storefront/internal/observability"

	"go.uber.org/zap"
)

// DefaultFlushEvery is how many order writes accumulate before the cache is
// replicated to the durable store.
const DefaultFlushEvery = 5

type Options struct {
	// FlushEvery overrides the write threshold. Zero means DefaultFlushEvery.
	FlushEvery int
	Logger     *zap.Logger
	Metrics    observability.Metrics
}

// Store owns the three collections and the durable handle exclusively. One
// mutex guards collections, id counters and the write counter, so id
// assignment is atomic, no read observes a half-applied write, and at most
// one flush is in flight.
type Store struct {
	db      *sql.DB
	logger  *zap.Logger
	metrics observability.Metrics

	mu       sync.Mutex
	sellers  []domain.Seller
	products []domain.Product
	orders   []domain.Order

	// Next ids are seeded from max(existing_id)+1 at load and only ever grow.
	// Deliberately decoupled from collection length: length-based ids would
	// reuse ids if a delete operation is ever added.
	nextSellerID int64
	nextOrderID  int64

	flushEvery int
	writes     int
	closed     bool
}

// Open opens or creates the durable store at path, ensures the schema and
// loads the full contents of all three tables into memory, preserving row
// order. Any failure here wraps domain.ErrStorageUnavailable and is fatal.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewNoop()
	}
	if opts.FlushEvery <= 0 {
		opts.FlushEvery = DefaultFlushEvery
	}

	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrStorageUnavailable, path, err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ensure schema: %v", domain.ErrStorageUnavailable, err)
	}

	s := &Store{
		db:         db,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		flushEvery: opts.FlushEvery,
	}
	if s.sellers, err = loadSellers(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: load sellers: %v", domain.ErrStorageUnavailable, err)
	}
	if s.products, err = loadProducts(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: load products: %v", domain.ErrStorageUnavailable, err)
	}
	if s.orders, err = loadOrders(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: load orders: %v", domain.ErrStorageUnavailable, err)
	}

	s.nextSellerID = 1
	for _, sel := range s.sellers {
		if sel.ID >= s.nextSellerID {
			s.nextSellerID = sel.ID + 1
		}
	}
	s.nextOrderID = 1
	for _, o := range s.orders {
		if o.ID >= s.nextOrderID {
			s.nextOrderID = o.ID + 1
		}
	}

	s.logger.Info("state loaded",
		zap.String("path", path),
		zap.Int("sellers", len(s.sellers)),
		zap.Int("products", len(s.products)),
		zap.Int("orders", len(s.orders)),
	)
	return s, nil
}

// OrdersForUser returns all orders placed by user, in insertion order. Served
// entirely from memory.
func (s *Store) OrdersForUser(user string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.IncRead()

	var out []domain.Order
	for _, o := range s.orders {
		if o.User == user {
			out = append(out, o)
		}
	}
	return out
}

// OrdersForSeller returns all orders for sellerID, restricted to pending ones
// when onlyPending is set.
func (s *Store) OrdersForSeller(sellerID int64, onlyPending bool) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.IncRead()

	var out []domain.Order
	for _, o := range s.orders {
		if o.SellerID != sellerID {
			continue
		}
		if onlyPending && o.Status != domain.StatusPending {
			continue
		}
		out = append(out, o)
	}
	return out
}

// SellerByName returns a copy of the seller with the given name.
func (s *Store) SellerByName(name string) (domain.Seller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.IncRead()

	for _, sel := range s.sellers {
		if sel.Name == name {
			return copySeller(sel), true
		}
	}
	return domain.Seller{}, false
}

// PlaceOrder appends a new pending, unpaid order and returns its id. The
// referenced seller and product are not checked for existence; that is the
// caller's responsibility.
func (s *Store) PlaceOrder(req domain.OrderRequest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, domain.ErrClosed
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:        s.nextOrderID,
		SellerID:  req.SellerID,
		ProductID: req.ProductID,
		User:      req.User,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Status:    domain.StatusPending,
		Paid:      false,
		CreatedAt: now,
		UpdatedAt: now,
		Note:      req.Note,
	}
	s.nextOrderID++
	s.orders = append(s.orders, order)
	s.metrics.IncWrite()

	s.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.String("user", order.User),
		zap.Int64("product_id", order.ProductID),
	)
	s.didWriteLocked()
	return order.ID, nil
}

// UpdateOrder applies the non-nil fields of upd to the order with the given
// id and refreshes updated_at. It reports whether the order was found; an
// unknown id mutates nothing and does not count as a write.
func (s *Store) UpdateOrder(orderID int64, upd domain.OrderUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, domain.ErrClosed
	}

	for i := range s.orders {
		if s.orders[i].ID != orderID {
			continue
		}
		if upd.Status != nil {
			s.orders[i].Status = *upd.Status
		}
		if upd.Paid != nil {
			s.orders[i].Paid = *upd.Paid
		}
		s.orders[i].UpdatedAt = time.Now().UTC()
		s.metrics.IncWrite()

		s.logger.Info("order updated", zap.Int64("order_id", orderID))
		s.didWriteLocked()
		return true, nil
	}
	return false, nil
}

// CreateSeller appends a new seller and replicates to the durable store
// immediately, bypassing the write counter. A name collision returns
// domain.ErrAlreadyExists without touching state.
func (s *Store) CreateSeller(name, passwordHash string) (domain.Seller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Seller{}, domain.ErrClosed
	}

	for _, sel := range s.sellers {
		if sel.Name == name {
			return domain.Seller{}, domain.ErrAlreadyExists
		}
	}

	seller := domain.Seller{
		ID:       s.nextSellerID,
		Name:     name,
		Password: passwordHash,
		Products: []int64{},
	}
	s.nextSellerID++
	s.sellers = append(s.sellers, seller)
	s.metrics.IncWrite()
	s.logger.Info("seller created", zap.Int64("seller_id", seller.ID), zap.String("name", name))

	// Account creation is worth a durability guarantee on its own; flush now
	// regardless of the counter. The counter itself is untouched.
	if err := s.flushLocked(); err != nil {
		s.logger.Error("immediate flush after signup failed", zap.Error(err))
	}
	return copySeller(seller), nil
}

// Close forces one final flush and releases the durable handle. The store
// must not be used afterwards; every operation returns domain.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrClosed
	}
	s.closed = true

	ferr := s.flushLocked()
	if cerr := s.db.Close(); cerr != nil && ferr == nil {
		ferr = cerr
	}
	return ferr
}

// didWriteLocked runs the write-accounting protocol: count the write and,
// once the threshold is reached, replicate synchronously. On flush failure
// the counter is left at the threshold so the next write retries.
func (s *Store) didWriteLocked() {
	s.writes++
	if s.writes < s.flushEvery {
		return
	}
	if err := s.flushLocked(); err != nil {
		s.logger.Error("threshold flush failed", zap.Error(err))
		return
	}
	s.writes = 0
}

// flushLocked rewrites the durable store from the in-memory collections. The
// caller holds s.mu. On failure the in-memory state stays authoritative and
// untouched.
func (s *Store) flushLocked() error {
	start := time.Now()
	s.logger.Info("replicating state to durable store",
		zap.Int("sellers", len(s.sellers)),
		zap.Int("products", len(s.products)),
		zap.Int("orders", len(s.orders)),
	)

	err := replicate(s.db, s.sellers, s.products, s.orders)
	durMs := float64(time.Since(start).Microseconds()) / 1000.0
	s.metrics.ObserveFlush(durMs, err == nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFlushFailed, err)
	}

	s.logger.Info("replication complete", zap.Float64("duration_ms", durMs))
	return nil
}

func copySeller(s domain.Seller) domain.Seller {
	out := s
	out.Products = append([]int64(nil), s.Products...)
	return out
}
