package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/resp"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/services"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/utils"
)

const dateLayout = "2006-01-02"

type OrderController struct {
	Orders   *services.OrderService
	UserRepo *repository.UserRepository
}

func NewOrderController(orders *services.OrderService, userRepo *repository.UserRepository) *OrderController {
	return &OrderController{Orders: orders, UserRepo: userRepo}
}

func (oc *OrderController) caller(c *gin.Context) (*entity.User, bool) {
	user, err := oc.UserRepo.FindByID(utils.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.Unauthorized(c, "unknown user")
		} else {
			resp.Error(c, err)
		}
		return nil, false
	}
	return user, true
}

// POST /orders/create
func (oc *OrderController) Create(c *gin.Context) {
	user, ok := oc.caller(c)
	if !ok {
		return
	}

	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.Create(user, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders/list/:restaurant_id?start_date=&end_date=
func (oc *OrderController) ListByRestaurant(c *gin.Context) {
	user, ok := oc.caller(c)
	if !ok {
		return
	}

	restID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	f := services.ListOrdersFilter{}
	f.Page, f.Limit = utils.PageParams(c)

	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			resp.BadRequest(c, "start_date must be YYYY-MM-DD")
			return
		}
		f.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			resp.BadRequest(c, "end_date must be YYYY-MM-DD")
			return
		}
		// inclusive end date
		t = t.AddDate(0, 0, 1)
		f.EndDate = &t
	}

	orders, total, err := oc.Orders.ListByRestaurant(user, uint(restID), f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Page(c, orders, total, f.Page, f.Limit)
}

// PUT /orders/:id
func (oc *OrderController) Update(c *gin.Context) {
	user, ok := oc.caller(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req services.UpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.Update(user, uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// DELETE /orders/:id, soft delete, cascades to items
func (oc *OrderController) Delete(c *gin.Context) {
	user, ok := oc.caller(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	if err := oc.Orders.SoftDelete(user, uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"detail": "order deleted"})
}
