package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) Get(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetWithRestaurant loads the order plus its restaurant, which the
// authorization checks need (owner id).
func (r *OrderRepository) GetWithRestaurant(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Restaurant").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetWithItems(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) UpdateFields(tx *gorm.DB, id uint, fields map[string]any) error {
	return tx.Model(&entity.Order{}).Where("id = ?", id).Updates(fields).Error
}

// ListByRestaurant returns active orders of a restaurant inside the
// [start, end] window (either bound may be nil), newest first.
func (r *OrderRepository) ListByRestaurant(restID uint, start, end *time.Time, page, limit int) ([]entity.Order, int64, error) {
	q := r.DB.Model(&entity.Order{}).
		Where("restaurant_id = ? AND status = ?", restID, true)
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at < ?", *end)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := q.Preload("Items").
		Order("id DESC").Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) Items(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

// DeleteItems removes the rows for good; item replacement on update is a
// real delete, unlike the soft-delete cascade.
func (r *OrderRepository) DeleteItems(tx *gorm.DB, orderID uint) error {
	return tx.Unscoped().Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error
}

func (r *OrderRepository) DeactivateItems(tx *gorm.DB, orderID uint) error {
	return tx.Model(&entity.OrderItem{}).
		Where("order_id = ?", orderID).
		Update("status", false).Error
}

// SumSubtotals adds up every item row of the order, regardless of the
// item status flag.
func (r *OrderRepository) SumSubtotals(tx *gorm.DB, orderID uint) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := tx.Model(&entity.OrderItem{}).
		Select("COALESCE(SUM(subtotal), 0) AS total").
		Where("order_id = ?", orderID).
		Scan(&row).Error
	return row.Total, err
}

// ---------------- Product lookups ----------------

// ProductBasics fetches the fields item creation needs: current price and
// owning restaurant.
func (r *OrderRepository) ProductBasics(id uint) (*entity.ProductItem, error) {
	var p entity.ProductItem
	if err := r.DB.Select("id, price, restaurant_id").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
