package models

import "time"

// CartLine is one (product, quantity) pairing held by a buyer before
// checkout. Lines are transient: checkout deletes them, and a buyer can
// remove them explicitly. A buyer holds at most one line per product.
type CartLine struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	BuyerID   string    `json:"buyer_id" gorm:"index:idx_cart_buyer_product,unique;type:varchar(36)" validate:"required,uuid"`
	ProductID string    `json:"product_id" gorm:"index:idx_cart_buyer_product,unique;type:varchar(36)" validate:"required,uuid"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CheckoutLine is a cart line joined with the live product row it references.
// It is the read-only input the checkout transaction prices and reserves
// against; Product reflects the state observed inside that same transaction.
type CheckoutLine struct {
	Line    CartLine
	Product Product
}
