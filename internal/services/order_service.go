package services

import (
	"fmt"
	"log"
	"time"

	"pasarikan/internal/apperrors"
	"pasarikan/internal/models"
	"pasarikan/internal/notifications"
	"pasarikan/internal/repositories"
)

// OrderService drives orders through the status state machine and the
// cancellation workflow. Every mutation is a single atomic read-branch-write
// on one order, so two concurrent cancellation attempts cannot both release
// stock: the second observes the terminal state and fails.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	tx          repositories.TxManager
	publisher   notifications.Publisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, tx repositories.TxManager, publisher notifications.Publisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		tx:          tx,
		publisher:   publisher,
	}
}

// GetOrders returns the orders the actor may see: admins see everything,
// everyone else sees their own purchases.
func (s *OrderService) GetOrders(actor Actor) ([]models.Order, error) {
	if actor.IsAdmin() {
		return s.orderRepo.GetAll()
	}
	return s.orderRepo.GetByBuyer(actor.ID)
}

// GetOrderByID returns one order if the actor may see it: the buyer who
// placed it, an admin, or a seller with a product in it.
func (s *OrderService) GetOrderByID(actor Actor, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(actor, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) authorizeView(actor Actor, order *models.Order) error {
	if actor.IsAdmin() || order.BuyerID == actor.ID {
		return nil
	}
	if actor.IsSeller() {
		ok, err := s.sellerInOrder(s.productRepo, actor.ID, order)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("order %s does not belong to you: %w", order.ID, apperrors.ErrForbidden)
}

// sellerInOrder reports whether any of the order's items references a
// product listed by the seller.
func (s *OrderService) sellerInOrder(products repositories.ProductRepository, sellerID string, order *models.Order) (bool, error) {
	for _, item := range order.Items {
		product, err := products.GetByID(item.ProductID)
		if err != nil {
			// A product deleted after purchase no longer identifies its
			// seller; skip it rather than failing the check.
			continue
		}
		if product.SellerID == sellerID {
			return true, nil
		}
	}
	return false, nil
}

// UpdateStatus moves an order forward through the fulfilment states on
// behalf of a seller or admin. Cancellation is never reachable through here;
// it has its own workflow below.
func (s *OrderService) UpdateStatus(actor Actor, orderID string, target models.OrderStatus) (*models.Order, error) {
	if !actor.IsSeller() && !actor.IsAdmin() {
		return nil, fmt.Errorf("only sellers and admins may update order status: %w", apperrors.ErrForbidden)
	}
	if !models.ValidStatus(target) {
		return nil, fmt.Errorf("unknown order status %q: %w", target, apperrors.ErrValidation)
	}
	if target == models.StatusCancelled {
		return nil, fmt.Errorf("orders are cancelled through the cancellation workflow: %w", apperrors.ErrInvalidTransition)
	}

	var order *models.Order
	err := s.tx.RunInTransaction(func(repos repositories.RepositorySet) error {
		var err error
		order, err = repos.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if actor.IsSeller() && !actor.IsAdmin() {
			ok, err := s.sellerInOrder(repos.Products, actor.ID, order)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("order %s contains none of your products: %w", orderID, apperrors.ErrForbidden)
			}
		}
		if !models.CanTransition(order.Status, target) {
			return fmt.Errorf("cannot move order from %s to %s: %w", order.Status, target, apperrors.ErrInvalidTransition)
		}
		order.Status = target
		return repos.Orders.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// RequestCancellation is the buyer entry point of the cancellation workflow.
// Admins calling it fall through to a forced cancellation. For buyers:
// an order still pending cancels immediately (stock released, buyer
// notified); an order already processing escalates to admin approval and
// stays active in the interim.
func (s *OrderService) RequestCancellation(actor Actor, orderID, reason string) (*models.Order, error) {
	if actor.IsAdmin() {
		return s.ForceCancel(actor, orderID, reason)
	}
	if reason == "" {
		return nil, fmt.Errorf("a cancellation reason is required: %w", apperrors.ErrValidation)
	}

	var order *models.Order
	var events []notifications.Event

	err := s.tx.RunInTransaction(func(repos repositories.RepositorySet) error {
		var err error
		order, err = repos.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order.BuyerID != actor.ID {
			return fmt.Errorf("order %s does not belong to you: %w", orderID, apperrors.ErrForbidden)
		}
		if order.AdminApprovalRequired {
			return fmt.Errorf("order %s is already awaiting an admin decision: %w", orderID, apperrors.ErrValidation)
		}
		if !models.CanCancel(order.Status) {
			return fmt.Errorf("order in status %s cannot be cancelled: %w", order.Status, apperrors.ErrInvalidTransition)
		}

		if order.Status == models.StatusProcessing {
			// Already being fulfilled: escalate instead of cancelling.
			order.AdminApprovalRequired = true
			order.CancellationReason = reason
			if err := repos.Orders.Update(order); err != nil {
				return err
			}
			events = append(events, notifications.NewEvent(
				notifications.EventCancellationRequested, models.RoleAdmin, "", order.ID,
				map[string]interface{}{"reason": reason}))
			return nil
		}

		// Still pending: cancel on the spot.
		if err := s.cancelOrder(repos, order, reason); err != nil {
			return err
		}
		events = append(events, notifications.NewEvent(
			notifications.EventCancellationUpdate, models.RoleBuyer, order.BuyerID, order.ID,
			map[string]interface{}{"status": string(order.Status), "reason": reason}))
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifications.Dispatch(s.publisher, events)
	return order, nil
}

// ResolveCancellation is the admin decision on an escalated cancellation
// request. Approving flips the order to cancelled and releases its stock,
// unless fulfilment already moved the order past a cancellable state;
// rejecting leaves the order wherever fulfilment took it. A resolved request
// clears the approval flag, so it cannot be resolved twice.
func (s *OrderService) ResolveCancellation(actor Actor, orderID string, approved bool) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only admins may resolve cancellation requests: %w", apperrors.ErrForbidden)
	}

	var order *models.Order
	err := s.tx.RunInTransaction(func(repos repositories.RepositorySet) error {
		var err error
		order, err = repos.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if !order.AdminApprovalRequired {
			return fmt.Errorf("order %s has no pending cancellation request: %w", orderID, apperrors.ErrValidation)
		}

		if approved {
			// The order stayed fulfillable while the request was pending, so
			// it may have been shipped or delivered in the meantime. Terminal
			// and in-flight states stay where they are.
			if !models.CanCancel(order.Status) {
				return fmt.Errorf("order in status %s can no longer be cancelled: %w", order.Status, apperrors.ErrInvalidTransition)
			}
			return s.cancelOrder(repos, order, order.CancellationReason)
		}

		// Rejection clears the request and leaves the order in whatever
		// fulfilment state it reached.
		order.AdminApprovalRequired = false
		order.CancellationReason = ""
		return repos.Orders.Update(order)
	})
	if err != nil {
		return nil, err
	}

	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	log.Printf("Cancellation request for order %s %s by admin %s", orderID, outcome, actor.ID)
	notifications.Dispatch(s.publisher, []notifications.Event{
		notifications.NewEvent(notifications.EventCancellationUpdate, models.RoleBuyer, order.BuyerID, order.ID,
			map[string]interface{}{"status": string(order.Status), "outcome": outcome}),
	})
	return order, nil
}

// ForceCancel cancels any still-cancellable order directly, bypassing the
// approval escalation. Admin only; a reason is mandatory.
func (s *OrderService) ForceCancel(actor Actor, orderID, reason string) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only admins may force-cancel orders: %w", apperrors.ErrForbidden)
	}
	if reason == "" {
		return nil, fmt.Errorf("a cancellation reason is required: %w", apperrors.ErrValidation)
	}

	var order *models.Order
	err := s.tx.RunInTransaction(func(repos repositories.RepositorySet) error {
		var err error
		order, err = repos.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if !models.CanCancel(order.Status) {
			return fmt.Errorf("order in status %s cannot be cancelled: %w", order.Status, apperrors.ErrInvalidTransition)
		}
		return s.cancelOrder(repos, order, reason)
	})
	if err != nil {
		return nil, err
	}

	notifications.Dispatch(s.publisher, []notifications.Event{
		notifications.NewEvent(notifications.EventCancellationUpdate, models.RoleBuyer, order.BuyerID, order.ID,
			map[string]interface{}{"status": string(order.Status), "reason": reason}),
	})
	return order, nil
}

// cancelOrder is the single place an order's status flips to cancelled, and
// therefore the single place its stock is released. Every path in reaches it
// at most once per order: callers have already verified, inside the same
// transaction, that the order is not yet terminal.
func (s *OrderService) cancelOrder(repos repositories.RepositorySet, order *models.Order, reason string) error {
	now := time.Now()
	order.Status = models.StatusCancelled
	order.AdminApprovalRequired = false
	order.CancellationReason = reason
	order.CancelledAt = &now
	if err := repos.Orders.Update(order); err != nil {
		return err
	}

	for _, item := range order.Items {
		if err := repos.Products.ReleaseStock(item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
