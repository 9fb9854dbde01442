package repositories

// RepositorySet bundles the repositories a single atomic unit may touch.
// The set handed to a transaction callback is scoped to that transaction:
// writes through it become visible together on commit or not at all.
type RepositorySet struct {
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
}

// TxManager runs a function as one atomic unit against transaction-scoped
// repositories. Checkout and every status/cancellation mutation go through
// it, so no caller ever sees a half-applied order.
type TxManager interface {
	// RunInTransaction executes fn; if fn returns an error, every write fn
	// made through the RepositorySet is rolled back and the error is
	// returned unchanged.
	RunInTransaction(fn func(repos RepositorySet) error) error
}
