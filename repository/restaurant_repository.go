package repository

import (
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return r.DB.Create(rest).Error
}

func (r *RestaurantRepository) FindByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) IsOwnedBy(restID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

// NameTaken checks the name against every restaurant, active or not; the
// name must stay unique across soft-deleted rows too.
func (r *RestaurantRepository) NameTaken(name string) (bool, error) {
	var cnt int64
	err := r.DB.Unscoped().Model(&entity.Restaurant{}).
		Where("name = ?", name).
		Count(&cnt).Error
	return cnt > 0, err
}

type RestaurantFilter struct {
	Name string
	// OwnerID limits the listing to one owner; 0 means everyone.
	OwnerID uint
}

func (r *RestaurantRepository) List(f RestaurantFilter, page, limit int) ([]entity.Restaurant, int64, error) {
	q := r.DB.Model(&entity.Restaurant{}).Where("status = ?", true)
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.OwnerID != 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Restaurant
	err := q.Order("id ASC").Limit(limit).Offset((page - 1) * limit).Find(&out).Error
	return out, total, err
}

func (r *RestaurantRepository) Save(rest *entity.Restaurant) error {
	return r.DB.Save(rest).Error
}
