package handlers

import (
	"log"

	"pasarikan/internal/middleware"
	"pasarikan/internal/models"
	"pasarikan/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout and the order lifecycle.
type OrderHandler struct {
	checkoutService *services.CheckoutService
	orderService    *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkoutService *services.CheckoutService, orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// RegisterRoutes registers the checkout and order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)

	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id", h.HandleUpdateOrderStatus)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
	orderRoutes.Patch("/:id/approve-cancellation", h.HandleApproveCancellation)
}

// CheckoutRequest is the request body for POST /checkout.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
	PaymentMethod   string `json:"payment_method"`
}

// HandleCheckout converts the authenticated buyer's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "Invalid request body",
		})
	}

	order, err := h.checkoutService.Checkout(actor.ID, req.ShippingAddress, req.BillingAddress, req.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
	})
}

// HandleGetOrders lists the orders visible to the actor.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	orders, err := h.orderService.GetOrders(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	order, err := h.orderService.GetOrderByID(actor, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleUpdateOrderStatus moves an order forward through the fulfilment
// states (seller or admin).
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "Invalid request body for status update",
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "Status is required for order status update.",
		})
	}

	order, err := h.orderService.UpdateStatus(actor, c.Params("id"), models.OrderStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleCancelOrder starts the cancellation workflow: a buyer requests
// cancellation of their own order, an admin force-cancels directly.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cancellation request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "Invalid request body",
		})
	}

	order, err := h.orderService.RequestCancellation(actor, c.Params("id"), req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleApproveCancellation resolves an escalated cancellation request
// (admin only).
func (h *OrderHandler) HandleApproveCancellation(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var req struct {
		Approved *bool `json:"approved"`
	}
	if err := c.BodyParser(&req); err != nil || req.Approved == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "A boolean 'approved' field is required",
		})
	}

	order, err := h.orderService.ResolveCancellation(actor, c.Params("id"), *req.Approved)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
