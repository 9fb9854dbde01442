package repositories

import (
	"fmt"

	"pasarikan/internal/apperrors"
	"pasarikan/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByBuyer retrieves all of a buyer's cart lines.
func (r *GORMCartRepository) GetByBuyer(buyerID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.db.Find(&lines, "buyer_id = ?", buyerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart lines for buyer %s: %w", buyerID, err)
	}
	return lines, nil
}

// GetLine retrieves the buyer's cart line for one product.
func (r *GORMCartRepository) GetLine(buyerID, productID string) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.db.First(&line, "buyer_id = ? AND product_id = ?", buyerID, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cart line for product %s: %w", productID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart line for buyer %s, product %s: %w", buyerID, productID, err)
	}
	return &line, nil
}

// Save creates or updates the cart line.
func (r *GORMCartRepository) Save(line *models.CartLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	if err := r.db.Save(line).Error; err != nil {
		return fmt.Errorf("failed to save cart line: %w", err)
	}
	return nil
}

// DeleteLine removes the buyer's cart line for one product.
func (r *GORMCartRepository) DeleteLine(buyerID, productID string) error {
	res := r.db.Delete(&models.CartLine{}, "buyer_id = ? AND product_id = ?", buyerID, productID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart line: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart line for product %s: %w", productID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteByBuyer removes all of a buyer's cart lines. Deleting an already
// empty cart is not an error; checkout relies on that.
func (r *GORMCartRepository) DeleteByBuyer(buyerID string) error {
	if err := r.db.Delete(&models.CartLine{}, "buyer_id = ?", buyerID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for buyer %s: %w", buyerID, err)
	}
	return nil
}
