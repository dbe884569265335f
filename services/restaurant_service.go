package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/apperr"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
)

type RestaurantService struct {
	Repo     *repository.RestaurantRepository
	UserRepo *repository.UserRepository
}

func NewRestaurantService(repo *repository.RestaurantRepository, userRepo *repository.UserRepository) *RestaurantService {
	return &RestaurantService{Repo: repo, UserRepo: userRepo}
}

type RestaurantIn struct {
	OwnerID uint   `json:"owner" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Create registers a restaurant. ADMIN only; the owner must hold the
// OWNER role and the name must be unique across all restaurants, deleted
// ones included.
func (s *RestaurantService) Create(actorRole entity.Role, in *RestaurantIn) (*entity.Restaurant, error) {
	if actorRole != entity.RoleAdmin {
		return nil, apperr.Permission("only ADMIN can create restaurants")
	}

	owner, err := s.UserRepo.FindByID(in.OwnerID)
	if err != nil || owner.Role != entity.RoleOwner {
		return nil, apperr.Validation("owner must be an existing user with the OWNER role")
	}

	taken, err := s.Repo.NameTaken(in.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("a restaurant with this name already exists")
	}

	rest := &entity.Restaurant{
		OwnerID: in.OwnerID,
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
		Status:  true,
	}
	if err := s.Repo.Create(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) ListOwn(ownerID uint, name string, page, limit int) ([]entity.Restaurant, int64, error) {
	return s.Repo.List(repository.RestaurantFilter{Name: name, OwnerID: ownerID}, page, limit)
}

func (s *RestaurantService) ListAll(name string, page, limit int) ([]entity.Restaurant, int64, error) {
	return s.Repo.List(repository.RestaurantFilter{Name: name}, page, limit)
}

type RestaurantUpdate struct {
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// Update edits address/phone. ADMIN or the restaurant's owner.
func (s *RestaurantService) Update(actorID uint, actorRole entity.Role, id uint, in *RestaurantUpdate) (*entity.Restaurant, error) {
	rest, err := s.mustFind(id)
	if err != nil {
		return nil, err
	}
	if actorRole != entity.RoleAdmin && rest.OwnerID != actorID {
		return nil, apperr.Permission("you do not have permission to update this restaurant")
	}

	if in.Address != nil {
		rest.Address = *in.Address
	}
	if in.Phone != nil {
		rest.Phone = *in.Phone
	}
	if err := s.Repo.Save(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

// SoftDelete flags the restaurant inactive. ADMIN only; deleting twice
// is a validation error.
func (s *RestaurantService) SoftDelete(actorRole entity.Role, id uint) error {
	if actorRole != entity.RoleAdmin {
		return apperr.Permission("only ADMIN can delete restaurants")
	}

	rest, err := s.mustFind(id)
	if err != nil {
		return err
	}
	if !rest.Status {
		return apperr.Validation("restaurant is already deleted")
	}
	rest.Status = false
	return s.Repo.Save(rest)
}

func (s *RestaurantService) mustFind(id uint) (*entity.Restaurant, error) {
	rest, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, err
	}
	return rest, nil
}
