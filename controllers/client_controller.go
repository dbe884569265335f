package controllers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/resp"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/services"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/utils"
)

type ClientController struct {
	Clients *services.ClientService
}

func NewClientController(clients *services.ClientService) *ClientController {
	return &ClientController{Clients: clients}
}

// POST /clients
func (cc *ClientController) Create(c *gin.Context) {
	var req services.ClientIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	client, err := cc.Clients.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, client)
}

// GET /clients/list
func (cc *ClientController) List(c *gin.Context) {
	page, limit := utils.PageParams(c)
	f := repository.ClientFilter{
		Name:  c.Query("name"),
		Email: c.Query("email"),
		Phone: c.Query("phone"),
	}

	clients, total, err := cc.Clients.List(f, page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Page(c, clients, total, page, limit)
}

// PUT /clients/:id
func (cc *ClientController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid client id")
		return
	}

	var req services.ClientUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	client, err := cc.Clients.Update(uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, client)
}

// DELETE /clients/:id
func (cc *ClientController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid client id")
		return
	}

	if err := cc.Clients.SoftDelete(uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"detail": "client deleted"})
}

// POST /clients/bulk-upload
func (cc *ClientController) BulkUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		resp.BadRequest(c, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		resp.Error(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		resp.Error(c, err)
		return
	}

	taskID, err := cc.Clients.StartBulkUpload(utils.CurrentUserID(c), data)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"task_id": taskID, "detail": "bulk upload initiated"})
}

// GET /clients/bulk-upload/status?task_id=
func (cc *ClientController) BulkUploadStatus(c *gin.Context) {
	taskID := c.Query("task_id")
	if taskID == "" {
		resp.BadRequest(c, "task_id is required")
		return
	}

	result, done := cc.Clients.BulkStatus(taskID)
	if !done {
		resp.OK(c, gin.H{"task_id": taskID, "ready": false})
		return
	}
	resp.OK(c, gin.H{"task_id": taskID, "ready": true, "result": result})
}
