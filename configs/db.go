package configs

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
)

// OpenDB connects to the configured database. The handle is passed down
// explicitly; there is no package-level connection.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBSource)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return gorm.Open(dialector, &gorm.Config{})
}

func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{}, &entity.Client{},
		&entity.Restaurant{}, &entity.ProductItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.ReportRequest{},
	)
}
