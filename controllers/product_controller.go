package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/resp"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/services"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/utils"
)

type ProductController struct {
	Products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{Products: products}
}

// GET /product-items
func (pc *ProductController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)
	restID, _ := strconv.Atoi(c.Query("restaurant"))
	f := repository.ProductFilter{
		Name:         c.Query("name"),
		RestaurantID: uint(restID),
	}

	items, total, err := pc.Products.List(f, page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Page(c, items, total, page, limit)
}

// GET /restaurants/menu/:restaurant_id (public)
func (pc *ProductController) Menu(c *gin.Context) {
	restID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	items, err := pc.Products.Menu(uint(restID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /product-items
func (pc *ProductController) Create(c *gin.Context) {
	var req services.ProductIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	p, err := pc.Products.Create(utils.CurrentUserID(c), utils.CurrentRole(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, p)
}

// PUT /product-items/:id
func (pc *ProductController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}

	var req services.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	p, err := pc.Products.Update(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

// DELETE /product-items/:id
func (pc *ProductController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid product id")
		return
	}

	if err := pc.Products.SoftDelete(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"detail": "product item deleted"})
}
