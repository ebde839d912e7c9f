package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// State is what the presentation layer reads: contents, loading flag and last error.
type State struct {
	Items   []models.LineItem `json:"items"`
	Loading bool              `json:"loading"`
	Error   string            `json:"error,omitempty"`
}

// Store holds one visitor's cart and mirrors it to Storage after every mutation.
// The in-memory list is authoritative; storage is a best-effort backup, so storage
// failures are recorded in Err and never undo a mutation.
type Store struct {
	key     string
	storage Storage
	log     *zap.Logger

	initOnce sync.Once

	mu    sync.Mutex
	items []models.LineItem
	seq   uint64 // bumped on every mutation
	err   error
	subs  map[int]func(State)
	subID int

	saveMu   sync.Mutex
	savedSeq uint64
	inFlight atomic.Int32
}

func NewStore(storage Storage, key string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		key:     key,
		storage: storage,
		log:     log,
		items:   []models.LineItem{},
		subs:    make(map[int]func(State)),
	}
}

// Initialize loads the stored snapshot. It runs once; later calls return immediately.
// A missing snapshot is an empty cart. Read or parse failures leave the cart empty
// and are reported through Err.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		s.inFlight.Add(1)
		defer s.inFlight.Add(-1)

		data, err := s.storage.Load(ctx, s.key)
		if errors.Is(err, ErrNotFound) {
			return
		}
		if err == nil {
			var items []models.LineItem
			if items, err = Unmarshal(data); err == nil {
				s.mu.Lock()
				s.items = items
				s.mu.Unlock()
				return
			}
		}

		s.log.Warn("cart snapshot could not be loaded, starting empty", zap.String("key", s.key), zap.Error(err))
		s.mu.Lock()
		s.err = fmt.Errorf("load cart: %w", err)
		s.mu.Unlock()
	})
}

// Add puts quantity more of product into the cart. A quantity below 1 means 1.
// A product already in the cart gets its quantity increased; a new product is
// appended with quantity 1.
func (s *Store) Add(ctx context.Context, p models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mutate(ctx, func(items []models.LineItem) ([]models.LineItem, bool) {
		for i := range items {
			if items[i].ID == p.ID {
				items[i].Quantity += quantity
				return items, true
			}
		}
		return append(items, models.LineItem{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.PrimaryImage(),
			Quantity:  1,
			SKU:       p.SKU,
			ProductID: p.ID,
			VariantID: p.BaseVariantID,
		}), true
	})
}

// Remove deletes the line for id. Removing an absent id does nothing.
func (s *Store) Remove(ctx context.Context, id int) {
	s.mutate(ctx, func(items []models.LineItem) ([]models.LineItem, bool) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), true
			}
		}
		return items, false
	})
}

// UpdateQuantity sets the quantity of the line for id. Callers must pass
// quantity >= 1; the store does not check it.
func (s *Store) UpdateQuantity(ctx context.Context, id, quantity int) {
	s.mutate(ctx, func(items []models.LineItem) ([]models.LineItem, bool) {
		for i := range items {
			if items[i].ID == id {
				if items[i].Quantity == quantity {
					return items, false
				}
				items[i].Quantity = quantity
				return items, true
			}
		}
		return items, false
	})
}

func (s *Store) Clear(ctx context.Context) {
	s.mutate(ctx, func(items []models.LineItem) ([]models.LineItem, bool) {
		return []models.LineItem{}, len(items) > 0
	})
}

// Items returns a copy of the current line items.
func (s *Store) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

// Lookup returns the line for id.
func (s *Store) Lookup(id int) (models.LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.LineItem{}, false
}

// Err returns the last load or persist error, nil once a later persist succeeds.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{Items: clone(s.items), Loading: s.inFlight.Load() > 0}
	if s.err != nil {
		st.Error = s.err.Error()
	}
	return st
}

func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Subtotal(s.items)
}

// Count is the total number of units in the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Subscribe registers fn to receive the cart state after every mutation.
// fn runs on the mutating goroutine and must not block.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	s.subID++
	id := s.subID
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// busy reports whether someone is subscribed or a save is running.
func (s *Store) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs) > 0 || s.inFlight.Load() > 0
}

func (s *Store) mutate(ctx context.Context, fn func([]models.LineItem) ([]models.LineItem, bool)) {
	s.Initialize(ctx)

	s.mu.Lock()
	items, changed := fn(s.items)
	if !changed {
		s.mu.Unlock()
		return
	}
	s.items = items
	s.seq++
	seq := s.seq
	snapshot := clone(items)
	s.mu.Unlock()

	// A started save always runs to completion, even if the request goes away.
	s.persist(context.WithoutCancel(ctx), seq, snapshot)
	s.notify()
}

// persist writes snapshot unless a newer one has already been stored.
func (s *Store) persist(ctx context.Context, seq uint64, snapshot []models.LineItem) {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if seq <= s.savedSeq {
		return
	}

	data, err := Marshal(snapshot)
	if err == nil {
		err = s.storage.Save(ctx, s.key, data)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Warn("cart snapshot not saved", zap.String("key", s.key), zap.Error(err))
		s.err = fmt.Errorf("save cart: %w", err)
		return
	}
	s.savedSeq = seq
	s.err = nil
}

func (s *Store) notify() {
	st := s.State()

	s.mu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// Subtotal sums unit price times quantity over items.
func Subtotal(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func clone(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	copy(out, items)
	return out
}
