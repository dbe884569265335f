package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/apperr"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
)

type orderFixture struct {
	svc      *OrderService
	admin    *entity.User
	owner    *entity.User
	waitress *entity.User
	rest     *entity.Restaurant
	pizza    *entity.ProductItem
	soda     *entity.ProductItem
}

func newOrderFixture(t *testing.T) (*orderFixture, *gorm.DB) {
	db := newTestDB(t)
	admin := makeUser(t, db, "admin", entity.RoleAdmin, nil)
	owner := makeUser(t, db, "owner", entity.RoleOwner, nil)
	rest := makeRestaurant(t, db, "La Trattoria", owner.ID)
	waitress := makeUser(t, db, "waitress", entity.RoleWaitress, &rest.ID)
	pizza := makeProduct(t, db, rest.ID, "Pizza", "10.50")
	soda := makeProduct(t, db, rest.ID, "Soda", "2.00")

	svc := NewOrderService(db, repository.NewOrderRepository(db), repository.NewRestaurantRepository(db))
	return &orderFixture{
		svc:      svc,
		admin:    admin,
		owner:    owner,
		waitress: waitress,
		rest:     rest,
		pizza:    pizza,
		soda:     soda,
	}, db
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got),
		"want %s, got %s", want, got.String())
}

func TestCreateOrderComputesTotal(t *testing.T) {
	f, _ := newOrderFixture(t)

	order, err := f.svc.Create(f.waitress, &CreateOrderReq{
		Items: []OrderItemIn{
			{ProductItemID: f.pizza.ID, Quantity: 2},
			{ProductItemID: f.soda.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Equal(t, entity.StatusOrderPending, order.StatusOrder)
	require.Equal(t, f.rest.ID, order.RestaurantID)
	require.Len(t, order.Items, 2)
	requireDecimal(t, "21.00", order.Items[0].Subtotal)
	requireDecimal(t, "6.00", order.Items[1].Subtotal)
	requireDecimal(t, "27.00", order.Total)
}

func TestCreateOrderSnapshotsPrice(t *testing.T) {
	f, db := newOrderFixture(t)

	order, err := f.svc.Create(f.waitress, &CreateOrderReq{
		Items: []OrderItemIn{{ProductItemID: f.pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	requireDecimal(t, "10.50", order.Total)

	// raising the product price must not touch existing orders
	err = db.Model(&entity.ProductItem{}).Where("id = ?", f.pizza.ID).
		Update("price", decimal.RequireFromString("99.99")).Error
	require.NoError(t, err)

	reloaded, err := f.svc.Repo.GetWithItems(order.ID)
	require.NoError(t, err)
	requireDecimal(t, "10.50", reloaded.Items[0].PriceUnit)
	requireDecimal(t, "10.50", reloaded.Total)
}

func TestCreateOrderExplicitPriceOverride(t *testing.T) {
	f, _ := newOrderFixture(t)

	discount := decimal.RequireFromString("8.00")
	order, err := f.svc.Create(f.waitress, &CreateOrderReq{
		Items: []OrderItemIn{{ProductItemID: f.pizza.ID, Quantity: 2, PriceUnit: &discount}},
	})
	require.NoError(t, err)
	requireDecimal(t, "16.00", order.Total)
}

func TestCreateOrderRejectsForeignProduct(t *testing.T) {
	f, db := newOrderFixture(t)

	otherOwner := makeUser(t, db, "owner2", entity.RoleOwner, nil)
	other := makeRestaurant(t, db, "Otro Sitio", otherOwner.ID)
	foreign := makeProduct(t, db, other.ID, "Tacos", "5.00")

	_, err := f.svc.Create(f.waitress, &CreateOrderReq{
		Items: []OrderItemIn{
			{ProductItemID: f.pizza.ID, Quantity: 1},
			{ProductItemID: foreign.ID, Quantity: 1},
		},
	})
	require.Error(t, err)
	require.True(t, apperr.IsValidation(err))

	// nothing may be written when any item is rejected
	var n int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestCreateOrderRoleChecks(t *testing.T) {
	f, db := newOrderFixture(t)

	req := &CreateOrderReq{Items: []OrderItemIn{{ProductItemID: f.pizza.ID, Quantity: 1}}}

	_, err := f.svc.Create(f.admin, req)
	require.True(t, apperr.IsValidation(err))

	_, err = f.svc.Create(f.owner, req)
	require.True(t, apperr.IsValidation(err))

	unassigned := makeUser(t, db, "floater", entity.RoleWaitress, nil)
	_, err = f.svc.Create(unassigned, req)
	require.True(t, apperr.IsValidation(err))
}

func TestUpdateOrderReplacesItems(t *testing.T) {
	f, db := newOrderFixture(t)

	order, err := f.svc.Create(f.waitress, &CreateOrderReq{
		Items: []OrderItemIn{
			{ProductItemID: f.pizza.ID, Quantity: 2},
			{ProductItemID: f.soda.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	requireDecimal(t, "23.00", order.Total)

	items := []OrderItemIn{{ProductItemID: f.soda.ID, Quantity: 5}}
	updated, err := f.svc.Update(f.waitress, order.ID, &UpdateOrderReq{Items: &items})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	requireDecimal(t, "10.00", updated.Total)

	// replaced rows are gone, not soft-flagged
	var n int64
	require.NoError(t, db.Model(&entity.OrderItem{}).Where("order_id = ?", order.ID).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestUpdateOrderFieldsOnlyKeepsItems(t *testing.T) {
	f, _ := newOrderFixture(t)

	order, err := f.svc.Create(f.waitress, &CreateOrderReq{
		Items: []OrderItemIn{{ProductItemID: f.pizza.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	status := "delivered"
	updated, err := f.svc.Update(f.waitress, order.ID, &UpdateOrderReq{StatusOrder: &status})
	require.NoError(t, err)

	require.Equal(t, "delivered", updated.StatusOrder)
	require.Len(t, updated.Items, 1)
	requireDecimal(t, "21.00", updated.Total)
}

func TestUpdateOrderRejectsForeignItems(t *testing.T) {
	f, db := newOrderFixture(t)

	order, err := f.svc.Create(f.waitress, &CreateOrderReq{
		Items: []OrderItemIn{{ProductItemID: f.pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	otherOwner := makeUser(t, db, "owner2", entity.RoleOwner, nil)
	other := makeRestaurant(t, db, "Otro Sitio", otherOwner.ID)
	foreign := makeProduct(t, db, other.ID, "Tacos", "5.00")

	items := []OrderItemIn{{ProductItemID: foreign.ID, Quantity: 1}}
	_, err = f.svc.Update(f.waitress, order.ID, &UpdateOrderReq{Items: &items})
	require.True(t, apperr.IsValidation(err))

	// the original item set survives a rejected replacement
	reloaded, err := f.svc.Repo.GetWithItems(order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	require.Equal(t, f.pizza.ID, reloaded.Items[0].ProductItemID)
}

func TestSoftDeleteCascadesAndKeepsTotal(t *testing.T) {
	f, db := newOrderFixture(t)

	order, err := f.svc.Create(f.waitress, &CreateOrderReq{
		Items: []OrderItemIn{{ProductItemID: f.pizza.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.SoftDelete(f.waitress, order.ID))

	var got entity.Order
	require.NoError(t, db.Preload("Items").First(&got, order.ID).Error)
	require.False(t, got.Status)
	for _, it := range got.Items {
		require.False(t, it.Status)
	}
	requireDecimal(t, "21.00", got.Total)
}

func TestTotalIncludesInactiveItems(t *testing.T) {
	f, db := newOrderFixture(t)

	order, err := f.svc.Create(f.waitress, &CreateOrderReq{
		Items: []OrderItemIn{
			{ProductItemID: f.pizza.ID, Quantity: 1},
			{ProductItemID: f.soda.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	requireDecimal(t, "12.50", order.Total)

	// flagging an item inactive does not shrink the total
	err = db.Model(&entity.OrderItem{}).
		Where("order_id = ? AND product_item_id = ?", order.ID, f.soda.ID).
		Update("status", false).Error
	require.NoError(t, err)

	require.NoError(t, f.svc.RecomputeTotal(db, order))
	requireDecimal(t, "12.50", order.Total)
}

func TestInactiveFlagSurvivesCreate(t *testing.T) {
	f, db := newOrderFixture(t)

	// a record written as inactive must read back inactive; a column
	// default would swallow the false value on insert
	o := entity.Order{RestaurantID: f.rest.ID, StatusOrder: entity.StatusOrderPending, Status: false}
	require.NoError(t, db.Create(&o).Error)

	var got entity.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	require.False(t, got.Status)

	c := entity.Client{Name: "Gone", Email: "gone@example.com", Status: false}
	require.NoError(t, db.Create(&c).Error)
	var gotClient entity.Client
	require.NoError(t, db.First(&gotClient, c.ID).Error)
	require.False(t, gotClient.Status)

	// and inactive orders stay out of the restaurant listing
	_, total, err := f.svc.ListByRestaurant(f.admin, f.rest.ID, ListOrdersFilter{})
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestOrderAuthorizationMatrix(t *testing.T) {
	f, db := newOrderFixture(t)

	order, err := f.svc.Create(f.waitress, &CreateOrderReq{
		Items: []OrderItemIn{{ProductItemID: f.pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	otherOwner := makeUser(t, db, "owner2", entity.RoleOwner, nil)
	other := makeRestaurant(t, db, "Otro Sitio", otherOwner.ID)
	otherWaitress := makeUser(t, db, "waitress2", entity.RoleWaitress, &other.ID)

	status := "delivered"
	req := &UpdateOrderReq{StatusOrder: &status}

	_, err = f.svc.Update(f.admin, order.ID, req)
	require.NoError(t, err)

	_, err = f.svc.Update(f.owner, order.ID, req)
	require.NoError(t, err)

	_, err = f.svc.Update(otherOwner, order.ID, req)
	require.True(t, apperr.IsPermission(err))

	_, err = f.svc.Update(otherWaitress, order.ID, req)
	require.True(t, apperr.IsPermission(err))

	err = f.svc.SoftDelete(otherOwner, order.ID)
	require.True(t, apperr.IsPermission(err))

	_, err = f.svc.Update(f.admin, 9999, req)
	require.True(t, apperr.IsNotFound(err))
}

func TestListOrdersByRestaurant(t *testing.T) {
	f, _ := newOrderFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(f.waitress, &CreateOrderReq{
			Items: []OrderItemIn{{ProductItemID: f.soda.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	orders, total, err := f.svc.ListByRestaurant(f.owner, f.rest.ID, ListOrdersFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, orders, 3)

	orders, total, err = f.svc.ListByRestaurant(f.admin, f.rest.ID, ListOrdersFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, orders, 1)

	// a window in the past excludes everything
	start := time.Now().AddDate(-1, 0, 0)
	end := start.AddDate(0, 1, 0)
	orders, total, err = f.svc.ListByRestaurant(f.admin, f.rest.ID, ListOrdersFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, orders)

	_, _, err = f.svc.ListByRestaurant(f.waitress, f.rest.ID+100, ListOrdersFilter{})
	require.True(t, apperr.IsPermission(err))
}
