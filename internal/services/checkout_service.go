package services

import (
	"fmt"
	"log"

	"pasarikan/internal/apperrors"
	"pasarikan/internal/models"
	"pasarikan/internal/notifications"
	"pasarikan/internal/repositories"
)

// CheckoutService converts a buyer's cart into a durable order. The whole
// conversion runs as one atomic unit: the order and its items become visible
// together with the stock decrement and the cart clear, or none of it does,
// leaving the cart untouched for a retry.
type CheckoutService struct {
	tx        repositories.TxManager
	publisher notifications.Publisher
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(tx repositories.TxManager, publisher notifications.Publisher) *CheckoutService {
	return &CheckoutService{
		tx:        tx,
		publisher: publisher,
	}
}

// Checkout runs the checkout transaction for a buyer:
//  1. load and aggregate the cart lines against live product state,
//  2. verify stock sufficiency per line (naming the offending product),
//  3. compute the total from the prices observed in this transaction,
//  4. create the order in status processing,
//  5. create one price-frozen item per line,
//  6. reserve stock per line (conditional decrement; this is the
//     authoritative guard against concurrent oversell),
//  7. delete the buyer's cart lines.
//
// Any failure rolls back everything. Notification events are published only
// after the transaction has committed, and publish failures never surface.
func (s *CheckoutService) Checkout(buyerID, shippingAddress, billingAddress, paymentMethod string) (*models.Order, error) {
	if shippingAddress == "" || billingAddress == "" || paymentMethod == "" {
		return nil, fmt.Errorf("shipping address, billing address and payment method are required: %w", apperrors.ErrValidation)
	}

	var order *models.Order
	var checkoutLines []models.CheckoutLine

	err := s.tx.RunInTransaction(func(repos repositories.RepositorySet) error {
		lines, err := loadCheckoutLines(repos.Carts, repos.Products, buyerID)
		if err != nil {
			return err
		}
		checkoutLines = lines

		var totalAmount float64
		items := make([]models.OrderItem, 0, len(lines))
		for _, cl := range lines {
			if cl.Product.Stock < cl.Line.Quantity {
				return fmt.Errorf("product %s (requested: %d, available: %d): %w",
					cl.Product.Name, cl.Line.Quantity, cl.Product.Stock, apperrors.ErrInsufficientStock)
			}
			items = append(items, models.OrderItem{
				ProductID: cl.Product.ID,
				Quantity:  cl.Line.Quantity,
				Price:     cl.Product.Price, // price at the time of order
			})
			totalAmount += cl.Product.Price * float64(cl.Line.Quantity)
		}

		order = &models.Order{
			BuyerID:         buyerID,
			TotalAmount:     totalAmount,
			ShippingAddress: shippingAddress,
			BillingAddress:  billingAddress,
			PaymentMethod:   paymentMethod,
			Status:          models.StatusProcessing,
			Items:           items,
		}
		if err := repos.Orders.Create(order); err != nil {
			return err
		}

		for _, cl := range lines {
			if err := repos.Products.ReserveStock(cl.Product.ID, cl.Line.Quantity); err != nil {
				return err
			}
		}

		return repos.Carts.DeleteByBuyer(buyerID)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Checkout completed for buyer %s: order %s, total %.2f", buyerID, order.ID, order.TotalAmount)
	notifications.Dispatch(s.publisher, s.placedEvents(order, checkoutLines))

	return order, nil
}

// placedEvents builds the order-placed fan-out: one event for the buyer, one
// per distinct seller with items in the order, and one admin alert.
func (s *CheckoutService) placedEvents(order *models.Order, lines []models.CheckoutLine) []notifications.Event {
	payload := map[string]interface{}{
		"total_amount": order.TotalAmount,
		"status":       string(order.Status),
	}

	events := []notifications.Event{
		notifications.NewEvent(notifications.EventOrderPlaced, models.RoleBuyer, order.BuyerID, order.ID, payload),
	}

	sellers := make(map[string]bool)
	for _, cl := range lines {
		if !sellers[cl.Product.SellerID] {
			sellers[cl.Product.SellerID] = true
			events = append(events, notifications.NewEvent(
				notifications.EventOrderReceived, models.RoleSeller, cl.Product.SellerID, order.ID, payload))
		}
	}

	events = append(events, notifications.NewEvent(
		notifications.EventOrderAlert, models.RoleAdmin, "", order.ID, payload))
	return events
}
