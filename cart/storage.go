package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/DillanMilo/angus-biltong-sub000/models"
)

// StorageKey is the well-known key the cart snapshot lives under.
const StorageKey = "cart"

// ErrNotFound is returned by Storage.Load when nothing is stored under the key.
var ErrNotFound = errors.New("cart: no snapshot stored")

// Storage persists serialized cart snapshots by key.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Marshal encodes line items as the stored JSON array.
func Marshal(items []models.LineItem) ([]byte, error) {
	if items == nil {
		items = []models.LineItem{}
	}
	return json.Marshal(items)
}

// Unmarshal decodes a stored JSON array of line items. Lines with a quantity
// below 1 are dropped and repeated product ids are merged into the first line
// with their quantities summed, so a hand-edited or older snapshot still loads
// as one line per product.
func Unmarshal(data []byte) ([]models.LineItem, error) {
	var items []models.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("cart: parse snapshot: %w", err)
	}
	return normalize(items), nil
}

func normalize(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	at := make(map[int]int, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		if i, ok := at[it.ID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		at[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}

// MemoryStorage keeps snapshots in process memory.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}
