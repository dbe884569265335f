package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/apperr"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/utils"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	RestRepo  *repository.RestaurantRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, restRepo *repository.RestaurantRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{UserRepo: userRepo, RestRepo: restRepo, jwtSecret: secret, jwtTTL: ttl}
}

// Login checks the credentials and issues a token.
func (s *AuthService) Login(username, password string) (string, *entity.User, error) {
	username = strings.TrimSpace(username)
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return "", nil, apperr.Validation("invalid credentials")
	}
	if !user.Status {
		return "", nil, apperr.Validation("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Validation("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, user, nil
}

type RegisterReq struct {
	Username        string      `json:"username" binding:"required"`
	Password        string      `json:"password" binding:"required,min=8"`
	ConfirmPassword string      `json:"confirmPassword" binding:"required"`
	Email           string      `json:"email"`
	Role            entity.Role `json:"role" binding:"required"`
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	RestaurantID    *uint       `json:"restaurant"`
}

// Register creates a user. The assigned restaurant, when given, must be
// active.
func (s *AuthService) Register(req *RegisterReq) (*entity.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperr.Validation("passwords must match, please try again")
	}
	if !req.Role.Valid() {
		return nil, apperr.Validation("invalid role")
	}

	username := strings.TrimSpace(req.Username)
	count, err := s.UserRepo.CountByUsername(username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Validation("username already registered")
	}

	if req.RestaurantID != nil {
		rest, err := s.RestRepo.FindByID(*req.RestaurantID)
		if err != nil || !rest.Status {
			return nil, apperr.Validation("restaurant not found or inactive")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		Username:     username,
		Password:     string(hashed),
		Email:        strings.TrimSpace(req.Email),
		Role:         req.Role,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		RestaurantID: req.RestaurantID,
		Status:       true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before replacing it.
func (s *AuthService) ChangePassword(userID uint, current, next string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return apperr.Validation("current password is incorrect")
	}
	if len(next) < 8 {
		return apperr.Validation("new password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("hash password failed")
	}
	user.Password = string(hashed)
	return s.UserRepo.Save(user)
}
