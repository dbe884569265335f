package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/apperr"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
)

type ProductService struct {
	Repo     *repository.ProductRepository
	RestRepo *repository.RestaurantRepository
}

func NewProductService(repo *repository.ProductRepository, restRepo *repository.RestaurantRepository) *ProductService {
	return &ProductService{Repo: repo, RestRepo: restRepo}
}

type ProductIn struct {
	RestaurantID uint            `json:"restaurant" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" binding:"required"`
}

// Create adds a product to a restaurant's menu. ADMIN anywhere, OWNER on
// their own restaurants. Price must be positive.
func (s *ProductService) Create(actorID uint, actorRole entity.Role, in *ProductIn) (*entity.ProductItem, error) {
	if err := s.authorize(actorID, actorRole, in.RestaurantID); err != nil {
		return nil, err
	}
	if !in.Price.IsPositive() {
		return nil, apperr.Validation("price must be positive")
	}

	p := &entity.ProductItem{
		RestaurantID: in.RestaurantID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Status:       true,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) List(f repository.ProductFilter, page, limit int) ([]entity.ProductItem, int64, error) {
	return s.Repo.List(f, page, limit)
}

func (s *ProductService) Menu(restaurantID uint) ([]entity.ProductItem, error) {
	return s.Repo.Menu(restaurantID)
}

type ProductUpdate struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// Update edits a product. Price changes only affect future orders; items
// already written keep their snapshot.
func (s *ProductService) Update(actorID uint, actorRole entity.Role, id uint, in *ProductUpdate) (*entity.ProductItem, error) {
	p, err := s.mustFind(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actorID, actorRole, p.RestaurantID); err != nil {
		return nil, err
	}

	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, apperr.Validation("price must be positive")
		}
		p.Price = *in.Price
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}

	if err := s.Repo.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) SoftDelete(actorID uint, actorRole entity.Role, id uint) error {
	p, err := s.mustFind(id)
	if err != nil {
		return err
	}
	if err := s.authorize(actorID, actorRole, p.RestaurantID); err != nil {
		return err
	}
	if !p.Status {
		return apperr.Validation("product is already deleted")
	}
	p.Status = false
	return s.Repo.Save(p)
}

func (s *ProductService) authorize(actorID uint, actorRole entity.Role, restaurantID uint) error {
	switch actorRole {
	case entity.RoleAdmin:
		return nil
	case entity.RoleOwner:
		owned, err := s.RestRepo.IsOwnedBy(restaurantID, actorID)
		if err != nil {
			return err
		}
		if !owned {
			return apperr.Permission("you can only manage products of your own restaurant")
		}
		return nil
	default:
		return apperr.Permission("only ADMIN or OWNER can manage products")
	}
}

func (s *ProductService) mustFind(id uint) (*entity.ProductItem, error) {
	p, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}
	return p, nil
}
