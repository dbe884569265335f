package repository

import (
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
)

type ClientRepository struct {
	DB *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

func (r *ClientRepository) Create(c *entity.Client) error {
	return r.DB.Create(c).Error
}

// FindActive looks a client up by id, ignoring soft-deleted ones.
func (r *ClientRepository) FindActive(id uint) (*entity.Client, error) {
	var c entity.Client
	if err := r.DB.Where("id = ? AND status = ?", id, true).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// EmailExists reports whether any client (active or not) holds the email.
func (r *ClientRepository) EmailExists(email string) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Client{}).Where("email = ?", email).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *ClientRepository) EmailTakenByOther(email string, id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Client{}).
		Where("email = ? AND id <> ?", email, id).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

type ClientFilter struct {
	Name  string
	Email string
	Phone string
}

func (r *ClientRepository) List(f ClientFilter, page, limit int) ([]entity.Client, int64, error) {
	q := r.DB.Model(&entity.Client{}).Where("status = ?", true)
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.Email != "" {
		q = q.Where("email LIKE ?", "%"+f.Email+"%")
	}
	if f.Phone != "" {
		q = q.Where("phone LIKE ?", "%"+f.Phone+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []entity.Client
	err := q.Order("id ASC").Limit(limit).Offset((page - 1) * limit).Find(&clients).Error
	return clients, total, err
}

func (r *ClientRepository) Save(c *entity.Client) error {
	return r.DB.Save(c).Error
}
