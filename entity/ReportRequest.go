package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReportPending   = "pending"
	ReportCompleted = "completed"
	ReportFailed    = "failed"
)

type ReportRequest struct {
	gorm.Model
	TaskID string `gorm:"uniqueIndex" json:"taskId"`

	UserID uint `gorm:"not null" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	// first day of the reported month, set when the job completes
	ReportDate   *time.Time `json:"reportDate"`
	StatusReport string     `gorm:"size:20;default:pending" json:"statusReport"`
}
