package repositories

import (
	"fmt"
	"sync"

	"pasarikan/internal/apperrors"
	"pasarikan/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
// Lines are keyed by (buyerID, productID).
type MockCartRepository struct {
	lines map[string]models.CartLine
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		lines: make(map[string]models.CartLine),
	}
}

func cartKey(buyerID, productID string) string {
	return buyerID + "/" + productID
}

// GetByBuyer returns all of a buyer's cart lines.
func (r *MockCartRepository) GetByBuyer(buyerID string) ([]models.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.CartLine
	for _, line := range r.lines {
		if line.BuyerID == buyerID {
			out = append(out, line)
		}
	}
	return out, nil
}

// GetLine returns the buyer's cart line for one product.
func (r *MockCartRepository) GetLine(buyerID, productID string) (*models.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	line, ok := r.lines[cartKey(buyerID, productID)]
	if !ok {
		return nil, fmt.Errorf("cart line for product %s: %w", productID, apperrors.ErrNotFound)
	}
	return &line, nil
}

// Save creates or updates the cart line.
func (r *MockCartRepository) Save(line *models.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	r.lines[cartKey(line.BuyerID, line.ProductID)] = *line
	return nil
}

// DeleteLine removes the buyer's cart line for one product.
func (r *MockCartRepository) DeleteLine(buyerID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey(buyerID, productID)
	if _, ok := r.lines[key]; !ok {
		return fmt.Errorf("cart line for product %s: %w", productID, apperrors.ErrNotFound)
	}
	delete(r.lines, key)
	return nil
}

// DeleteByBuyer removes all of a buyer's cart lines.
func (r *MockCartRepository) DeleteByBuyer(buyerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, line := range r.lines {
		if line.BuyerID == buyerID {
			delete(r.lines, key)
		}
	}
	return nil
}

// snapshot copies the cart table for transactional rollback.
func (r *MockCartRepository) snapshot() map[string]models.CartLine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(map[string]models.CartLine, len(r.lines))
	for key, line := range r.lines {
		copied[key] = line
	}
	return copied
}

// restore replaces the cart table with a previously taken snapshot.
func (r *MockCartRepository) restore(snapshot map[string]models.CartLine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = snapshot
}
