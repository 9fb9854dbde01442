package services

import (
	"errors"
	"fmt"

	"pasarikan/internal/apperrors"
	"pasarikan/internal/models"
	"pasarikan/internal/repositories"
)

// CartService handles business logic for a buyer's cart: line management
// before checkout, and the read-only aggregation that feeds the checkout
// transaction.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddLine puts quantity units of a product into the buyer's cart, merging
// into an existing line for the same product if there is one.
func (s *CartService) AddLine(buyerID, productID string, quantity int) (*models.CartLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", apperrors.ErrValidation)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID == buyerID {
		return nil, fmt.Errorf("sellers cannot buy their own listings: %w", apperrors.ErrValidation)
	}

	line, err := s.cartRepo.GetLine(buyerID, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		line = &models.CartLine{
			BuyerID:   buyerID,
			ProductID: productID,
			Quantity:  quantity,
		}
	} else {
		line.Quantity += quantity
	}

	if err := s.cartRepo.Save(line); err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateLine sets the quantity of an existing cart line.
func (s *CartService) UpdateLine(buyerID, productID string, quantity int) (*models.CartLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", apperrors.ErrValidation)
	}

	line, err := s.cartRepo.GetLine(buyerID, productID)
	if err != nil {
		return nil, err
	}
	line.Quantity = quantity
	if err := s.cartRepo.Save(line); err != nil {
		return nil, err
	}
	return line, nil
}

// RemoveLine deletes the buyer's cart line for one product.
func (s *CartService) RemoveLine(buyerID, productID string) error {
	return s.cartRepo.DeleteLine(buyerID, productID)
}

// GetCart returns the buyer's cart lines joined with current product data.
// Unlike loadCheckoutLines it tolerates an empty cart, since a buyer viewing
// an empty cart is not an error.
func (s *CartService) GetCart(buyerID string) ([]models.CheckoutLine, error) {
	lines, err := loadCheckoutLines(s.cartRepo, s.productRepo, buyerID)
	if err != nil && !errors.Is(err, apperrors.ErrEmptyCart) {
		return nil, err
	}
	return lines, nil
}

// loadCheckoutLines is the cart aggregator: it resolves a buyer's cart lines
// against the product rows they reference, read through the given
// repositories. When those repositories are transaction-scoped the product
// state observed here is the state the same transaction will price and
// reserve against. Fails with apperrors.ErrEmptyCart when no lines exist.
func loadCheckoutLines(carts repositories.CartRepository, products repositories.ProductRepository, buyerID string) ([]models.CheckoutLine, error) {
	lines, err := carts.GetByBuyer(buyerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	out := make([]models.CheckoutLine, 0, len(lines))
	for _, line := range lines {
		product, err := products.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.CheckoutLine{
			Line:    line,
			Product: *product,
		})
	}
	return out, nil
}
