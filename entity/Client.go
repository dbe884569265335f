package entity

import (
	"gorm.io/gorm"
)

type Client struct {
	gorm.Model
	Name   string `gorm:"not null" json:"name"`
	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Status bool   `json:"status"`

	Orders []Order `gorm:"foreignKey:ClientID" json:"-"`
}
