package entity

import (
	"gorm.io/gorm"
)

// Role is the closed set of roles the system knows about. Authorization
// code switches exhaustively over these values instead of comparing raw
// strings.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOwner    Role = "OWNER"
	RoleWaitress Role = "WAITRESS"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleWaitress:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `gorm:"size:10;not null" json:"role"`

	// soft-delete flag, separate from gorm's DeletedAt; no column
	// default so a false value survives Create
	Status bool `json:"status"`

	// assigned restaurant, only meaningful for WAITRESS
	RestaurantID *uint       `json:"restaurantId"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`

	RestaurantsOwned []Restaurant    `gorm:"foreignKey:OwnerID" json:"-"`
	Orders           []Order         `gorm:"foreignKey:WaitressID" json:"-"`
	ReportRequests   []ReportRequest `json:"-"`
}
