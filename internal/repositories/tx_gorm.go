package repositories

import (
	"gorm.io/gorm"
)

// GORMTxManager implements TxManager on a GORM database handle.
type GORMTxManager struct {
	db *gorm.DB
}

// NewGORMTxManager creates a new instance of GORMTxManager.
func NewGORMTxManager(db *gorm.DB) *GORMTxManager {
	return &GORMTxManager{
		db: db,
	}
}

// RunInTransaction wraps fn in a database transaction and hands it
// repositories bound to that transaction. GORM commits when fn returns nil
// and rolls back when it returns an error or panics.
func (m *GORMTxManager) RunInTransaction(fn func(repos RepositorySet) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(RepositorySet{
			Products: NewGORMProductRepository(tx),
			Carts:    NewGORMCartRepository(tx),
			Orders:   NewGORMOrderRepository(tx),
		})
	})
}
