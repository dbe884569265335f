package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/apperr"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/taskqueue"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
)

// ErrReportNotReady means the task exists but has not finished; the
// controller answers 202.
var ErrReportNotReady = errors.New("report is not ready yet")

// ReportService drives the asynchronous sales-report workflow: request,
// background generation, single-use download, request listing.
type ReportService struct {
	Repo       *repository.ReportRepository
	Queue      *taskqueue.Queue
	Log        *zap.Logger
	ReportsDir string
}

func NewReportService(repo *repository.ReportRepository, queue *taskqueue.Queue, log *zap.Logger, reportsDir string) *ReportService {
	return &ReportService{Repo: repo, Queue: queue, Log: log, ReportsDir: reportsDir}
}

// GenerateReportResult is the payload a finished generation task leaves
// behind for polling.
type GenerateReportResult struct {
	FilePath     string `json:"file_path"`
	StatusReport string `json:"status_report"`
	ReportDate   string `json:"report_date"`
}

// Request persists a pending ReportRequest and enqueues the generation
// task. Returns the task id and the request row id.
func (s *ReportService) Request(userID uint, month, year int) (string, uint, error) {
	if month < 1 || month > 12 {
		return "", 0, apperr.Validation("month must be between 1 and 12")
	}

	rr := &entity.ReportRequest{UserID: userID, StatusReport: entity.ReportPending}
	if err := s.Repo.Create(rr); err != nil {
		return "", 0, err
	}

	taskID := s.Queue.Enqueue("generate_sales_report", func(ctx context.Context) (any, error) {
		res, err := s.Generate(month, year, rr.ID)
		if err != nil {
			if ferr := s.Repo.MarkFailed(rr.ID); ferr != nil {
				s.Log.Warn("report request update failed", zap.Uint("id", rr.ID), zap.Error(ferr))
			}
			return nil, err
		}
		return res, nil
	})
	if err := s.Repo.SetTaskID(rr.ID, taskID); err != nil {
		return "", 0, err
	}
	return taskID, rr.ID, nil
}

// Generate aggregates the month's sales per restaurant and writes the
// semicolon-delimited CSV. Query and file errors propagate to the queue
// unguarded; only the final status update is shielded, so a vanished
// ReportRequest row never fails an otherwise finished report.
func (s *ReportService) Generate(month, year int, reportRequestID uint) (*GenerateReportResult, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := s.Repo.SalesByRestaurant(start, end)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.ReportsDir, 0o755); err != nil {
		return nil, err
	}
	filename := fmt.Sprintf("sales_report_%d_%02d.csv", year, month)
	path := filepath.Join(s.ReportsDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write([]string{"id", "name", "total_sales", "total_price_sales"}); err != nil {
		f.Close()
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Name,
			strconv.FormatInt(r.TotalSales, 10),
			r.TotalPriceSales.StringFixed(2),
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	if rr, err := s.Repo.FindByID(reportRequestID); err == nil {
		if err := s.Repo.MarkCompleted(rr.ID, start); err != nil {
			s.Log.Warn("report request update failed", zap.Uint("id", rr.ID), zap.Error(err))
		}
	} else {
		s.Log.Warn("report request not found, skipping status update",
			zap.Uint("id", reportRequestID), zap.Error(err))
	}

	return &GenerateReportResult{
		FilePath:     path,
		StatusReport: entity.ReportCompleted,
		ReportDate:   start.Format("2006-01-02"),
	}, nil
}

// Download hands out the generated CSV exactly once: the file is removed
// after a successful read, so the next call for the same task id is a
// not-found.
func (s *ReportService) Download(userID uint, taskID string) (data []byte, filename string, err error) {
	if _, err := s.Repo.FindByTask(taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.NotFound("no report request found for this task_id")
		}
		return nil, "", err
	}

	res, done := s.Queue.Poll(taskID)
	if !done {
		return nil, "", ErrReportNotReady
	}
	if res.Err != nil {
		return nil, "", res.Err
	}

	result, ok := res.Value.(*GenerateReportResult)
	if !ok || result.FilePath == "" {
		return nil, "", apperr.NotFound("report file not found")
	}

	data, err = os.ReadFile(result.FilePath)
	if err != nil {
		return nil, "", apperr.NotFound("report file not found")
	}
	if err := os.Remove(result.FilePath); err != nil {
		s.Log.Warn("report file cleanup failed", zap.String("path", result.FilePath), zap.Error(err))
	}
	return data, filepath.Base(result.FilePath), nil
}

func (s *ReportService) ListRequests(userID uint, page, limit int) ([]entity.ReportRequest, int64, error) {
	return s.Repo.ListByUser(userID, page, limit)
}
