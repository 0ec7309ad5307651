// Package cart holds the shopping cart for one visitor. A cart is a list of
// lines keyed by (product, size); adding an existing pair merges quantities
// instead of duplicating the line. Every mutation writes the whole cart back
// through the Storage port so it survives restarts.
package cart

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hcnails/studio/internal/models"
)

// Line is one (product, size, quantity) cart entry. Price and name are
// copied from the product so totals never need a product lookup.
type Line struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	Size      string          `json:"size"`
	Quantity  uint            `json:"quantity"`
}

type Store struct {
	mu      sync.Mutex
	lines   []Line
	key     string
	storage Storage
	log     *slog.Logger
}

// Open loads the cart saved under key, or starts an empty one when nothing
// is stored yet or the stored blob cannot be read.
func Open(key string, storage Storage, log *slog.Logger) *Store {
	s := &Store{key: key, storage: storage, log: log}
	data, err := storage.Load(key)
	if err != nil {
		if err != ErrNoCart {
			log.Warn("cart load failed, starting empty", "key", key, "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.lines); err != nil {
		log.Warn("cart blob unreadable, starting empty", "key", key, "error", err)
		s.lines = nil
	}
	return s
}

func (s *Store) AddItem(p *models.Product, size string, quantity uint) {
	if quantity == 0 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductID == p.ID && s.lines[i].Size == size {
			s.lines[i].Quantity += quantity
			s.save()
			return
		}
	}
	s.lines = append(s.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Size:      size,
		Quantity:  quantity,
	})
	s.save()
}

// RemoveItem deletes the matching line. Removing an absent pair is a no-op.
func (s *Store) RemoveItem(productID uint, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductID == productID && s.lines[i].Size == size {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.save()
			return
		}
	}
}

// UpdateQuantity sets the line's quantity verbatim. Callers keep quantities
// at 1 or above; the store does not clamp.
func (s *Store) UpdateQuantity(productID uint, size string, quantity uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductID == productID && s.lines[i].Size == size {
			s.lines[i].Quantity = quantity
			s.save()
			return
		}
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.save()
}

func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]Line, len(s.lines))
	copy(cp, s.lines)
	return cp
}

func (s *Store) TotalItems() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total uint
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromUint64(uint64(l.Quantity))))
	}
	return total
}

// save persists under the held lock. Last writer wins when the same cart is
// open twice; persistence failures are logged, never surfaced to callers.
func (s *Store) save() {
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.log.Error("cart marshal failed", "key", s.key, "error", err)
		return
	}
	if err := s.storage.Save(s.key, data); err != nil {
		s.log.Error("cart save failed", "key", s.key, "error", err)
	}
}
