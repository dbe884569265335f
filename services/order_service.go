package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/apperr"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
)

// OrderService keeps orders and their items consistent: price
// snapshotting, subtotal computation and total aggregation all live here.
// Total recomputation is explicit; nothing happens as a side effect of a
// row save.
type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	RestRepo *repository.RestaurantRepository
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, restRepo *repository.RestaurantRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo, RestRepo: restRepo}
}

// ----- DTOs from controllers -----

type OrderItemIn struct {
	ProductItemID uint `json:"productItem" binding:"required"`
	Quantity      int  `json:"quantity" binding:"required,min=1"`
	// PriceUnit overrides the snapshot; when nil the product's current
	// price is used.
	PriceUnit *decimal.Decimal `json:"priceUnit"`
}

type CreateOrderReq struct {
	ClientID *uint         `json:"client"`
	Items    []OrderItemIn `json:"items" binding:"required,min=1"`
}

type UpdateOrderReq struct {
	StatusOrder *string        `json:"statusOrder"`
	ClientID    *uint          `json:"client"`
	Items       *[]OrderItemIn `json:"items"`
}

type ListOrdersFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// ----- Create -----

// Create builds an order for the waitress's assigned restaurant. Every
// product must belong to that restaurant; any mismatch fails the whole
// call before a row is written.
func (s *OrderService) Create(caller *entity.User, req *CreateOrderReq) (*entity.Order, error) {
	if caller.Role != entity.RoleWaitress {
		return nil, apperr.Validation("only WAITRESS can create orders")
	}
	if caller.RestaurantID == nil {
		return nil, apperr.Validation("no restaurant is assigned to your account")
	}
	restID := *caller.RestaurantID

	if len(req.Items) == 0 {
		return nil, apperr.Validation("items is required")
	}

	rows, err := s.resolveItems(req.Items, restID)
	if err != nil {
		return nil, err
	}

	order := entity.Order{
		RestaurantID: restID,
		ClientID:     req.ClientID,
		WaitressID:   &caller.ID,
		StatusOrder:  entity.StatusOrderPending,
		Status:       true,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}
		for i := range rows {
			rows[i].OrderID = order.ID
			if err := s.Repo.CreateItem(tx, &rows[i]); err != nil {
				return err
			}
		}
		return s.RecomputeTotal(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	return s.Repo.GetWithItems(order.ID)
}

// resolveItems turns the incoming item list into persistable rows,
// snapshotting each product's price and rejecting products from another
// restaurant.
func (s *OrderService) resolveItems(in []OrderItemIn, restID uint) ([]entity.OrderItem, error) {
	rows := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		p, err := s.Repo.ProductBasics(it.ProductItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("product item not found")
			}
			return nil, err
		}
		if p.RestaurantID != restID {
			return nil, apperr.Validation("all items must belong to your assigned restaurant")
		}
		if it.Quantity <= 0 {
			return nil, apperr.Validation("quantity must be positive")
		}

		unit := p.Price
		if it.PriceUnit != nil {
			unit = *it.PriceUnit
		}
		rows = append(rows, entity.OrderItem{
			ProductItemID: p.ID,
			Quantity:      it.Quantity,
			PriceUnit:     unit,
			Subtotal:      unit.Mul(decimal.NewFromInt(int64(it.Quantity))),
			Status:        true,
		})
	}
	return rows, nil
}

// ----- Update -----

// Update applies partial field changes and, when items are supplied,
// replaces the full item set before recomputing the total.
func (s *OrderService) Update(caller *entity.User, orderID uint, req *UpdateOrderReq) (*entity.Order, error) {
	order, err := s.getAuthorized(caller, orderID)
	if err != nil {
		return nil, err
	}

	var rows []entity.OrderItem
	if req.Items != nil {
		rows, err = s.resolveItems(*req.Items, order.RestaurantID)
		if err != nil {
			return nil, err
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		fields := map[string]any{}
		if req.StatusOrder != nil {
			fields["status_order"] = *req.StatusOrder
		}
		if req.ClientID != nil {
			fields["client_id"] = *req.ClientID
		}
		if len(fields) > 0 {
			if err := s.Repo.UpdateFields(tx, order.ID, fields); err != nil {
				return err
			}
		}

		if req.Items != nil {
			if err := s.Repo.DeleteItems(tx, order.ID); err != nil {
				return err
			}
			for i := range rows {
				rows[i].OrderID = order.ID
				if err := s.Repo.CreateItem(tx, &rows[i]); err != nil {
					return err
				}
			}
		}

		return s.RecomputeTotal(tx, order)
	})
	if err != nil {
		return nil, err
	}

	return s.Repo.GetWithItems(order.ID)
}

// RecomputeTotal re-derives the order total from its current item rows
// and persists it. Idempotent; call it after every item mutation.
func (s *OrderService) RecomputeTotal(tx *gorm.DB, order *entity.Order) error {
	total, err := s.Repo.SumSubtotals(tx, order.ID)
	if err != nil {
		return err
	}
	order.Total = total
	return s.Repo.UpdateFields(tx, order.ID, map[string]any{"total": total})
}

// ----- Soft delete -----

// SoftDelete flags the order and every item inactive. Rows stay, and the
// total keeps its historical value.
func (s *OrderService) SoftDelete(caller *entity.User, orderID uint) error {
	order, err := s.getAuthorized(caller, orderID)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.UpdateFields(tx, order.ID, map[string]any{"status": false}); err != nil {
			return err
		}
		return s.Repo.DeactivateItems(tx, order.ID)
	})
}

// ----- Listing -----

// ListByRestaurant returns the restaurant's active orders. Without an
// explicit date filter the window defaults to the last 30 days.
func (s *OrderService) ListByRestaurant(caller *entity.User, restID uint, f ListOrdersFilter) ([]entity.Order, int64, error) {
	if err := s.authorizeRestaurant(caller, restID); err != nil {
		return nil, 0, err
	}

	start, end := f.StartDate, f.EndDate
	if start == nil && end == nil {
		e := time.Now()
		st := e.AddDate(0, 0, -30)
		start, end = &st, &e
	}

	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.Repo.ListByRestaurant(restID, start, end, page, limit)
}

// ----- Authorization -----

// getAuthorized loads an order and checks the caller may act on it:
// ADMIN on any, OWNER on orders of restaurants they own, WAITRESS on
// orders of their assigned restaurant.
func (s *OrderService) getAuthorized(caller *entity.User, orderID uint) (*entity.Order, error) {
	order, err := s.Repo.GetWithRestaurant(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	switch caller.Role {
	case entity.RoleAdmin:
		return order, nil
	case entity.RoleOwner:
		if order.Restaurant.OwnerID != caller.ID {
			return nil, apperr.Permission("you do not have permission to act on orders for restaurants you do not own")
		}
		return order, nil
	case entity.RoleWaitress:
		if caller.RestaurantID == nil || order.RestaurantID != *caller.RestaurantID {
			return nil, apperr.Permission("you do not have permission to act on orders from a different restaurant")
		}
		return order, nil
	default:
		return nil, apperr.Permission("you do not have permission to access this resource")
	}
}

func (s *OrderService) authorizeRestaurant(caller *entity.User, restID uint) error {
	switch caller.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleOwner:
		owned, err := s.RestRepo.IsOwnedBy(restID, caller.ID)
		if err != nil {
			return err
		}
		if !owned {
			return apperr.Permission("you are not the owner of this restaurant")
		}
		return nil
	case entity.RoleWaitress:
		if caller.RestaurantID == nil || *caller.RestaurantID != restID {
			return apperr.Permission("you are not assigned to this restaurant")
		}
		return nil
	default:
		return apperr.Permission("you do not have permission to access this resource")
	}
}
