package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
)

// SeedAdmin creates the first ADMIN account from ADMIN_USERNAME /
// ADMIN_PASSWORD. Skipped when either is missing or the user exists.
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.AdminUser == "" || cfg.AdminPass == "" {
		log.Println("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("username = ?", cfg.AdminUser).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Username: cfg.AdminUser,
		Password: string(hash),
		Role:     entity.RoleAdmin,
		Status:   true,
	}
	return db.Create(&admin).Error
}
