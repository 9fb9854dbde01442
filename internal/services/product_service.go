package services

import (
	"fmt"

	"pasarikan/internal/apperrors"
	"pasarikan/internal/models"
	"pasarikan/internal/repositories"
)

// ProductService handles business logic for seller product listings.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct lists a new product. Sellers list under their own identity;
// admins may list on behalf of a seller by setting SellerID explicitly.
func (s *ProductService) CreateProduct(actor Actor, product *models.Product) error {
	if !actor.IsSeller() && !actor.IsAdmin() {
		return fmt.Errorf("only sellers may list products: %w", apperrors.ErrForbidden)
	}
	if actor.IsSeller() {
		product.SellerID = actor.ID
	}
	if product.SellerID == "" {
		return fmt.Errorf("a seller is required for a product listing: %w", apperrors.ErrValidation)
	}
	return s.repo.Create(product)
}

// UpdateProduct updates a listing. Only the owning seller or an admin may
// change it. This is catalog management; stock adjustments made here are a
// seller restocking, not checkout traffic, which goes through the ledger
// operations on the repository.
func (s *ProductService) UpdateProduct(actor Actor, product *models.Product) error {
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && existing.SellerID != actor.ID {
		return fmt.Errorf("product %s is not your listing: %w", product.ID, apperrors.ErrForbidden)
	}
	product.SellerID = existing.SellerID
	return s.repo.Update(product)
}

// DeleteProduct removes a listing, with the same ownership rule as update.
func (s *ProductService) DeleteProduct(actor Actor, id string) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && existing.SellerID != actor.ID {
		return fmt.Errorf("product %s is not your listing: %w", id, apperrors.ErrForbidden)
	}
	return s.repo.Delete(id)
}
