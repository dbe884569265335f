package repository

import (
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(p *entity.ProductItem) error {
	return r.DB.Create(p).Error
}

func (r *ProductRepository) FindByID(id uint) (*entity.ProductItem, error) {
	var p entity.ProductItem
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

type ProductFilter struct {
	Name         string
	RestaurantID uint
}

func (r *ProductRepository) List(f ProductFilter, page, limit int) ([]entity.ProductItem, int64, error) {
	q := r.DB.Model(&entity.ProductItem{}).Where("status = ?", true)
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.RestaurantID != 0 {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.ProductItem
	err := q.Order("id ASC").Limit(limit).Offset((page - 1) * limit).Find(&items).Error
	return items, total, err
}

// Menu lists the active products of one restaurant.
func (r *ProductRepository) Menu(restaurantID uint) ([]entity.ProductItem, error) {
	var items []entity.ProductItem
	err := r.DB.Where("restaurant_id = ? AND status = ?", restaurantID, true).
		Order("id ASC").Find(&items).Error
	return items, err
}

func (r *ProductRepository) Save(p *entity.ProductItem) error {
	return r.DB.Save(p).Error
}
