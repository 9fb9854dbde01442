package repositories

import "sync"

// MockTxManager implements TxManager over the in-memory repositories. A
// single mutex serializes all transactions, which gives the same guarantee
// a serializable database transaction does: two concurrent checkouts against
// the same product run one after the other, never interleaved. Rollback is
// snapshot-and-restore of the three tables.
type MockTxManager struct {
	products *MockProductRepository
	carts    *MockCartRepository
	orders   *MockOrderRepository
	mu       sync.Mutex
}

// NewMockTxManager creates a transaction manager over the given in-memory
// repositories.
func NewMockTxManager(products *MockProductRepository, carts *MockCartRepository, orders *MockOrderRepository) *MockTxManager {
	return &MockTxManager{
		products: products,
		carts:    carts,
		orders:   orders,
	}
}

// RunInTransaction executes fn under the global lock, restoring the
// pre-transaction state of all three tables if fn fails.
func (m *MockTxManager) RunInTransaction(fn func(repos RepositorySet) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	productSnap := m.products.snapshot()
	cartSnap := m.carts.snapshot()
	orderSnap := m.orders.snapshot()

	err := fn(RepositorySet{
		Products: m.products,
		Carts:    m.carts,
		Orders:   m.orders,
	})
	if err != nil {
		m.products.restore(productSnap)
		m.carts.restore(cartSnap)
		m.orders.restore(orderSnap)
		return err
	}
	return nil
}
