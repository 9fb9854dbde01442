package repositories

import (
	"pasarikan/internal/models"
)

// CartRepository defines the interface for cart line data access. A buyer
// holds at most one line per product; Save upserts on that pair.
type CartRepository interface {
	GetByBuyer(buyerID string) ([]models.CartLine, error)
	GetLine(buyerID, productID string) (*models.CartLine, error)
	Save(line *models.CartLine) error
	DeleteLine(buyerID, productID string) error
	DeleteByBuyer(buyerID string) error
}
