package services_test

import (
	"sync"
	"testing"

	"pasarikan/internal/apperrors"
	"pasarikan/internal/models"
	"pasarikan/internal/notifications"
	"pasarikan/internal/repositories"
	"pasarikan/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture wires the services onto the in-memory repositories, the same shape
// main uses when no database is configured.
type fixture struct {
	products  *repositories.MockProductRepository
	carts     *repositories.MockCartRepository
	orders    *repositories.MockOrderRepository
	tx        *repositories.MockTxManager
	publisher *notifications.MemoryPublisher

	cartService     *services.CartService
	checkoutService *services.CheckoutService
	orderService    *services.OrderService
}

func newFixture() *fixture {
	f := &fixture{
		products:  repositories.NewMockProductRepository(),
		carts:     repositories.NewMockCartRepository(),
		orders:    repositories.NewMockOrderRepository(),
		publisher: notifications.NewMemoryPublisher(),
	}
	f.tx = repositories.NewMockTxManager(f.products, f.carts, f.orders)
	f.cartService = services.NewCartService(f.carts, f.products)
	f.checkoutService = services.NewCheckoutService(f.tx, f.publisher)
	f.orderService = services.NewOrderService(f.orders, f.products, f.tx, f.publisher)
	return f
}

func (f *fixture) seedProduct(t *testing.T, id, sellerID string, price float64, stock int) {
	t.Helper()
	err := f.products.Create(&models.Product{
		ID:       id,
		SellerID: sellerID,
		Name:     "Product " + id,
		Price:    price,
		Stock:    stock,
	})
	require.NoError(t, err)
}

func (f *fixture) addCartLine(t *testing.T, buyerID, productID string, quantity int) {
	t.Helper()
	_, err := f.cartService.AddLine(buyerID, productID, quantity)
	require.NoError(t, err)
}

func (f *fixture) productStock(t *testing.T, id string) int {
	t.Helper()
	product, err := f.products.GetByID(id)
	require.NoError(t, err)
	return product.Stock
}

func TestCheckout_CreatesOrderAndReservesStock(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "prod-x", "seller-1", 100.0, 3)
	f.addCartLine(t, "buyer-1", "prod-x", 2)

	order, err := f.checkoutService.Checkout("buyer-1", "Jl. Laut 1", "Jl. Laut 1", "bank_transfer")
	require.NoError(t, err)

	assert.Equal(t, 200.0, order.TotalAmount)
	assert.Equal(t, models.StatusProcessing, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 100.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Stock was reserved and the cart cleared.
	assert.Equal(t, 1, f.productStock(t, "prod-x"))
	lines, err := f.carts.GetByBuyer("buyer-1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	// The order is durably visible with its items.
	stored, err := f.orders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, stored.TotalAmount)
	require.Len(t, stored.Items, 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture()

	_, err := f.checkoutService.Checkout("buyer-1", "a", "b", "cod")
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
}

func TestCheckout_MissingAddresses(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "prod-x", "seller-1", 10.0, 5)
	f.addCartLine(t, "buyer-1", "prod-x", 1)

	_, err := f.checkoutService.Checkout("buyer-1", "", "b", "cod")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Nothing happened: stock and cart untouched.
	assert.Equal(t, 5, f.productStock(t, "prod-x"))
	lines, err := f.carts.GetByBuyer("buyer-1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestCheckout_InsufficientStockRollsBackEverything(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "prod-a", "seller-1", 10.0, 5)
	f.seedProduct(t, "prod-b", "seller-1", 20.0, 1)
	f.addCartLine(t, "buyer-1", "prod-a", 2)
	f.addCartLine(t, "buyer-1", "prod-b", 3) // more than available

	_, err := f.checkoutService.Checkout("buyer-1", "a", "b", "cod")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "prod-b")

	// All-or-nothing: no order, no stock movement on either product, cart intact.
	orders, err := f.orders.GetAll()
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 5, f.productStock(t, "prod-a"))
	assert.Equal(t, 1, f.productStock(t, "prod-b"))
	lines, err := f.carts.GetByBuyer("buyer-1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCheckout_PriceFrozenAgainstLaterChanges(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "prod-x", "seller-1", 100.0, 10)
	f.addCartLine(t, "buyer-1", "prod-x", 2)

	order, err := f.checkoutService.Checkout("buyer-1", "a", "b", "cod")
	require.NoError(t, err)

	// Reprice the product after the sale.
	product, err := f.products.GetByID("prod-x")
	require.NoError(t, err)
	product.Price = 999.0
	require.NoError(t, f.products.Update(product))

	stored, err := f.orders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, stored.TotalAmount)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 100.0, stored.Items[0].Price)
}

func TestCheckout_ConcurrentBuyersCannotOversell(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "prod-y", "seller-1", 50.0, 3)
	f.addCartLine(t, "buyer-1", "prod-y", 2)
	f.addCartLine(t, "buyer-2", "prod-y", 2)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, buyer := range []string{"buyer-1", "buyer-2"} {
		wg.Add(1)
		go func(buyerID string) {
			defer wg.Done()
			_, err := f.checkoutService.Checkout(buyerID, "a", "b", "cod")
			errs <- err
		}(buyer)
	}
	wg.Wait()
	close(errs)

	var succeeded, failed int
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one checkout should win the stock")
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, f.productStock(t, "prod-y"))
}

func TestCheckout_PublishesPlacedEvents(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "prod-a", "seller-1", 10.0, 5)
	f.seedProduct(t, "prod-b", "seller-2", 20.0, 5)
	f.addCartLine(t, "buyer-1", "prod-a", 1)
	f.addCartLine(t, "buyer-1", "prod-b", 1)

	order, err := f.checkoutService.Checkout("buyer-1", "a", "b", "cod")
	require.NoError(t, err)

	placed := f.publisher.ByType(notifications.EventOrderPlaced)
	require.Len(t, placed, 1)
	assert.Equal(t, "buyer-1", placed[0].RecipientID)
	assert.Equal(t, order.ID, placed[0].OrderID)

	received := f.publisher.ByType(notifications.EventOrderReceived)
	require.Len(t, received, 2) // one per distinct seller
	sellers := map[string]bool{received[0].RecipientID: true, received[1].RecipientID: true}
	assert.True(t, sellers["seller-1"] && sellers["seller-2"])

	alerts := f.publisher.ByType(notifications.EventOrderAlert)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.RoleAdmin, alerts[0].RecipientRole)
}
