package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int `gorm:"not null;default:1" json:"quantity"`

	// PriceUnit is a snapshot of the product's price taken when the item is
	// written. Later product price changes never touch it, which keeps
	// historical order totals stable.
	PriceUnit decimal.Decimal `gorm:"type:decimal(8,2)" json:"priceUnit"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	Status    bool            `json:"status"`

	OrderID uint  `gorm:"not null" json:"orderId"`
	Order   Order `gorm:"foreignKey:OrderID" json:"-"`

	ProductItemID uint        `gorm:"not null" json:"productItem"`
	ProductItem   ProductItem `gorm:"foreignKey:ProductItemID" json:"-"`
}
