package repositories

import (
	"pasarikan/internal/models"
)

// OrderRepository defines the interface for order data access.
// Create persists the order together with its line items. There is no
// Delete: orders are retained for audit and only move through statuses.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByBuyer(buyerID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
}
