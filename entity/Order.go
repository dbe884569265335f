package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatusOrderPending is the initial workflow label of every order. The
// label is free-form; no transition graph is enforced.
const StatusOrderPending = "pending"

type Order struct {
	gorm.Model
	StatusOrder string `gorm:"size:50;default:pending" json:"statusOrder"`

	// no column default: create sites set the flag explicitly, so a
	// false value round-trips instead of being swallowed by a default
	Status bool `json:"status"`

	// derived: sum of the items' subtotals, maintained by the order service
	Total decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"total"`

	RestaurantID uint       `gorm:"not null" json:"restaurantId"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`

	ClientID *uint   `json:"clientId"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"-"`

	WaitressID *uint `json:"waitressId"`
	Waitress   *User `gorm:"foreignKey:WaitressID" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}
