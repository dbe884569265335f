package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductItem struct {
	gorm.Model
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
	Status      bool            `json:"status"`

	RestaurantID uint       `gorm:"not null" json:"restaurant"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:ProductItemID" json:"-"`
}
