package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	// unique among all restaurants regardless of status
	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	Address string `json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`
	Status  bool   `json:"status"`

	OwnerID uint `gorm:"not null" json:"owner"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	MenuItems []ProductItem `gorm:"foreignKey:RestaurantID" json:"-"`
	Orders    []Order       `gorm:"foreignKey:RestaurantID" json:"-"`
	Employees []User        `gorm:"foreignKey:RestaurantID" json:"-"`
}
