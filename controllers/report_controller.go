package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/resp"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/services"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

type generateReportReq struct {
	Month int `json:"month" binding:"required"`
	Year  int `json:"year" binding:"required"`
}

// POST /orders/reports/generate
func (rc *ReportController) Generate(c *gin.Context) {
	var req generateReportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	taskID, requestID, err := rc.Reports.Request(utils.CurrentUserID(c), req.Month, req.Year)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Accepted(c, gin.H{
		"task_id":           taskID,
		"report_request_id": requestID,
		"detail":            "report generation started",
	})
}

type downloadReportReq struct {
	TaskID string `json:"task_id" binding:"required"`
}

// POST /orders/reports/download
func (rc *ReportController) Download(c *gin.Context) {
	var req downloadReportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	data, filename, err := rc.Reports.Download(utils.CurrentUserID(c), req.TaskID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotReady) {
			resp.Accepted(c, gin.H{"detail": "report is still being generated"})
			return
		}
		resp.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// GET /orders/reports/requests
func (rc *ReportController) ListRequests(c *gin.Context) {
	page, limit := utils.PageParams(c)
	requests, total, err := rc.Reports.ListRequests(utils.CurrentUserID(c), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Page(c, requests, total, page, limit)
}
