package repository

import (
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByUsername(username string) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).Where("username = ?", username).Count(&cnt).Error
	return cnt, err
}

// UserFilter narrows List; zero values mean "no filter".
type UserFilter struct {
	Role      string
	Username  string
	FirstName string
	LastName  string
}

// List returns active users matching the filter, ordered by username.
func (r *UserRepository) List(f UserFilter, page, limit int) ([]entity.User, int64, error) {
	q := r.DB.Model(&entity.User{}).Where("status = ?", true)
	if f.Role != "" {
		q = q.Where("UPPER(role) = UPPER(?)", f.Role)
	}
	if f.Username != "" {
		q = q.Where("username LIKE ?", "%"+f.Username+"%")
	}
	if f.FirstName != "" {
		q = q.Where("first_name LIKE ?", "%"+f.FirstName+"%")
	}
	if f.LastName != "" {
		q = q.Where("last_name LIKE ?", "%"+f.LastName+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := q.Order("username ASC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) Update(id uint, fields map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) Save(u *entity.User) error {
	return r.DB.Save(u).Error
}
