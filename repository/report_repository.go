package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

// SalesRow is one line of the sales report: per-restaurant order count
// and revenue inside the window.
type SalesRow struct {
	ID              uint
	Name            string
	TotalSales      int64
	TotalPriceSales decimal.Decimal
}

// SalesByRestaurant aggregates active orders created in [start, end),
// descending by order count. The window bounds replace month/year
// extraction so the query runs unchanged on sqlite and postgres.
func (r *ReportRepository) SalesByRestaurant(start, end time.Time) ([]SalesRow, error) {
	var rows []SalesRow
	err := r.DB.Table("restaurants AS r").
		Select("r.id AS id, r.name AS name, COUNT(o.id) AS total_sales, COALESCE(SUM(o.total), 0) AS total_price_sales").
		Joins("INNER JOIN orders o ON o.restaurant_id = r.id").
		Where("o.created_at >= ? AND o.created_at < ? AND o.status = ? AND o.deleted_at IS NULL", start, end, true).
		Group("r.id, r.name").
		Order("total_sales DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) Create(rr *entity.ReportRequest) error {
	return r.DB.Create(rr).Error
}

func (r *ReportRepository) SetTaskID(id uint, taskID string) error {
	return r.DB.Model(&entity.ReportRequest{}).Where("id = ?", id).
		Update("task_id", taskID).Error
}

func (r *ReportRepository) FindByID(id uint) (*entity.ReportRequest, error) {
	var rr entity.ReportRequest
	if err := r.DB.First(&rr, id).Error; err != nil {
		return nil, err
	}
	return &rr, nil
}

// FindByTask scopes the lookup to the requesting user: a report request
// is only visible to its creator.
func (r *ReportRepository) FindByTask(taskID string, userID uint) (*entity.ReportRequest, error) {
	var rr entity.ReportRequest
	if err := r.DB.Where("task_id = ? AND user_id = ?", taskID, userID).First(&rr).Error; err != nil {
		return nil, err
	}
	return &rr, nil
}

func (r *ReportRepository) MarkCompleted(id uint, reportDate time.Time) error {
	return r.DB.Model(&entity.ReportRequest{}).Where("id = ?", id).
		Updates(map[string]any{
			"status_report": entity.ReportCompleted,
			"report_date":   reportDate,
		}).Error
}

func (r *ReportRepository) MarkFailed(id uint) error {
	return r.DB.Model(&entity.ReportRequest{}).Where("id = ?", id).
		Update("status_report", entity.ReportFailed).Error
}

func (r *ReportRepository) ListByUser(userID uint, page, limit int) ([]entity.ReportRequest, int64, error) {
	q := r.DB.Model(&entity.ReportRequest{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.ReportRequest
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&out).Error
	return out, total, err
}
