package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/taskqueue"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Client{},
		&entity.Restaurant{},
		&entity.ProductItem{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.ReportRequest{},
	))
	return db
}

func newTestQueue(t *testing.T) *taskqueue.Queue {
	t.Helper()
	q := taskqueue.New(1, zap.NewNop())
	t.Cleanup(q.Close)
	return q
}

func makeUser(t *testing.T, db *gorm.DB, username string, role entity.Role, restID *uint) *entity.User {
	t.Helper()
	u := &entity.User{
		Username:     username,
		Password:     "hashed",
		Email:        username + "@example.com",
		Role:         role,
		Status:       true,
		RestaurantID: restID,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func makeRestaurant(t *testing.T, db *gorm.DB, name string, ownerID uint) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{Name: name, Address: "somewhere", Status: true, OwnerID: ownerID}
	require.NoError(t, db.Create(r).Error)
	return r
}

func makeProduct(t *testing.T, db *gorm.DB, restID uint, name, price string) *entity.ProductItem {
	t.Helper()
	p := &entity.ProductItem{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		RestaurantID: restID,
		Status:       true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
