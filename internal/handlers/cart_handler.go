package handlers

import (
	"fmt"
	"log"

	"pasarikan/internal/middleware"
	"pasarikan/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the buyer's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddLine)
	cartRoutes.Put("/:productId", h.HandleUpdateLine)
	cartRoutes.Delete("/:productId", h.HandleRemoveLine)
}

// CartLineRequest is the request body for adding or updating a cart line.
type CartLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// HandleGetCart returns the buyer's cart lines joined with product data.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	lines, err := h.service.GetCart(actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	type cartLineView struct {
		ProductID   string  `json:"product_id"`
		ProductName string  `json:"product_name"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
		Quantity    int     `json:"quantity"`
		Subtotal    float64 `json:"subtotal"`
	}
	views := make([]cartLineView, 0, len(lines))
	var total float64
	for _, cl := range lines {
		subtotal := cl.Product.Price * float64(cl.Line.Quantity)
		total += subtotal
		views = append(views, cartLineView{
			ProductID:   cl.Product.ID,
			ProductName: cl.Product.Name,
			Price:       cl.Product.Price,
			Stock:       cl.Product.Stock,
			Quantity:    cl.Line.Quantity,
			Subtotal:    subtotal,
		})
	}
	return c.JSON(fiber.Map{
		"lines": views,
		"total": total,
	})
}

// HandleAddLine adds a product to the buyer's cart.
func (h *CartHandler) HandleAddLine(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var req CartLineRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "Validation failed",
			"fields":  errorMessages,
		})
	}

	line, err := h.service.AddLine(actor.ID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// HandleUpdateLine sets the quantity of an existing cart line.
func (h *CartHandler) HandleUpdateLine(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "Invalid request body",
		})
	}

	line, err := h.service.UpdateLine(actor.ID, c.Params("productId"), req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(line)
}

// HandleRemoveLine deletes one cart line.
func (h *CartHandler) HandleRemoveLine(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if err := h.service.RemoveLine(actor.ID, c.Params("productId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart line removed",
	})
}
