package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/resp"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/services"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/utils"
)

type RestaurantController struct {
	Restaurants *services.RestaurantService
}

func NewRestaurantController(restaurants *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Restaurants: restaurants}
}

// GET /restaurants, the caller's own restaurants
func (rc *RestaurantController) ListOwn(c *gin.Context) {
	page, limit := utils.PageParams(c)
	items, total, err := rc.Restaurants.ListOwn(utils.CurrentUserID(c), c.Query("name"), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Page(c, items, total, page, limit)
}

// GET /restaurants/all (public)
func (rc *RestaurantController) ListAll(c *gin.Context) {
	page, limit := utils.PageParams(c)
	items, total, err := rc.Restaurants.ListAll(c.Query("name"), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Page(c, items, total, page, limit)
}

// POST /restaurants
func (rc *RestaurantController) Create(c *gin.Context) {
	var req services.RestaurantIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	rest, err := rc.Restaurants.Create(utils.CurrentRole(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, rest)
}

// PUT /restaurants/:id
func (rc *RestaurantController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	var req services.RestaurantUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	rest, err := rc.Restaurants.Update(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rest)
}

// DELETE /restaurants/:id
func (rc *RestaurantController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	if err := rc.Restaurants.SoftDelete(utils.CurrentRole(c), uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"detail": "restaurant deleted"})
}
