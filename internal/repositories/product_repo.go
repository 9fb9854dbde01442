package repositories

import (
	"pasarikan/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// ReserveStock and ReleaseStock are the inventory ledger: the only two
// operations allowed to change a product's stock. ReserveStock must be a
// single conditional decrement (applied only while stock covers the
// quantity), so that two concurrent checkouts can never both pass a stale
// stock check and jointly oversell.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetBySeller(sellerID string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error

	// ReserveStock decrements stock by quantity, failing with
	// apperrors.ErrInsufficientStock if the product holds less than that.
	ReserveStock(id string, quantity int) error
	// ReleaseStock increments stock by quantity. The state machine
	// guarantees it runs at most once per order.
	ReleaseStock(id string, quantity int) error
}
