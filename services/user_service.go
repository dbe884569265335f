package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/apperr"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) List(f repository.UserFilter, page, limit int) ([]entity.User, int64, error) {
	return s.Repo.List(f, page, limit)
}

type UserUpdate struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Update lets a user edit themselves; ADMIN may edit anyone.
func (s *UserService) Update(actorID uint, actorRole entity.Role, targetID uint, in *UserUpdate) (*entity.User, error) {
	if actorID != targetID && actorRole != entity.RoleAdmin {
		return nil, apperr.Permission("you do not have permission to update this user")
	}

	fields := map[string]any{}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.FirstName != nil {
		fields["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		fields["last_name"] = *in.LastName
	}

	if _, err := s.mustFind(targetID); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.Repo.Update(targetID, fields); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(targetID)
}

// SoftDelete flags the user inactive; same self-or-ADMIN rule.
func (s *UserService) SoftDelete(actorID uint, actorRole entity.Role, targetID uint) error {
	if actorID != targetID && actorRole != entity.RoleAdmin {
		return apperr.Permission("you do not have permission to delete this user")
	}

	user, err := s.mustFind(targetID)
	if err != nil {
		return err
	}
	user.Status = false
	return s.Repo.Save(user)
}

func (s *UserService) mustFind(id uint) (*entity.User, error) {
	user, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
