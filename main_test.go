package main

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasarikan/internal/repositories"
	"pasarikan/internal/services"
)

// newTestApp wires a Fiber app on the in-memory repositories, the same way
// main does when no database is configured.
func newTestApp() *fiber.App {
	products := repositories.NewMockProductRepository()
	carts := repositories.NewMockCartRepository()
	orders := repositories.NewMockOrderRepository()
	users := repositories.NewMockUserRepository()
	tx := repositories.NewMockTxManager(products, carts, orders)

	authService := services.NewAuthService(users, "test_jwt_secret")
	productService := services.NewProductService(products)
	cartService := services.NewCartService(carts, products)
	checkoutService := services.NewCheckoutService(tx, nil)
	orderService := services.NewOrderService(orders, products, tx, nil)

	return newApp(authService, productService, cartService, checkoutService, orderService)
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp()

	for _, path := range []string{"/api/v1/products", "/api/v1/cart", "/api/v1/orders"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, 401, resp.StatusCode, "expected 401 for %s without token", path)
	}
}
