package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/apperr"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/taskqueue"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
)

// maxBulkRows caps a bulk upload, header excluded. Checked before the
// file is staged and again inside the job.
const maxBulkRows = 20

// ClientService covers client CRUD plus the asynchronous bulk CSV
// import.
type ClientService struct {
	Repo       *repository.ClientRepository
	Queue      *taskqueue.Queue
	Log        *zap.Logger
	UploadsDir string
}

func NewClientService(repo *repository.ClientRepository, queue *taskqueue.Queue, log *zap.Logger, uploadsDir string) *ClientService {
	return &ClientService{Repo: repo, Queue: queue, Log: log, UploadsDir: uploadsDir}
}

// ----- CRUD -----

type ClientIn struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

func (s *ClientService) Create(in *ClientIn) (*entity.Client, error) {
	exists, err := s.Repo.EmailExists(in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Validation("this email is already registered")
	}

	c := &entity.Client{Name: in.Name, Email: in.Email, Phone: in.Phone, Status: true}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) List(f repository.ClientFilter, page, limit int) ([]entity.Client, int64, error) {
	return s.Repo.List(f, page, limit)
}

type ClientUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (s *ClientService) Update(id uint, in *ClientUpdate) (*entity.Client, error) {
	c, err := s.Repo.FindActive(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("client not found or inactive")
		}
		return nil, err
	}

	if in.Email != nil && *in.Email != c.Email {
		taken, err := s.Repo.EmailTakenByOther(*in.Email, c.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Validation("this email is already registered")
		}
		c.Email = *in.Email
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}

	if err := s.Repo.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) SoftDelete(id uint) error {
	c, err := s.Repo.FindActive(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("client not found or inactive")
		}
		return err
	}
	c.Status = false
	return s.Repo.Save(c)
}

// ----- Bulk import -----

// BulkResult is what a finished import task leaves for polling. Either
// Error is set, or Processed/Errors describe the outcome.
type BulkResult struct {
	Processed int      `json:"processed"`
	Errors    []string `json:"errors"`
	Error     string   `json:"error,omitempty"`
}

// StartBulkUpload validates the CSV size synchronously, stages it under
// a per-upload unique name and enqueues the import. Nothing is staged
// when validation fails.
func (s *ClientService) StartBulkUpload(userID uint, file []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(file))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return "", apperr.Validation("invalid CSV file: " + err.Error())
	}
	if len(rows) == 0 {
		return "", apperr.Validation("the file is empty")
	}
	if len(rows)-1 > maxBulkRows {
		return "", apperr.Validation(fmt.Sprintf("the file cannot contain more than %d records", maxBulkRows))
	}

	if err := os.MkdirAll(s.UploadsDir, 0o755); err != nil {
		return "", err
	}
	// unique name per upload so concurrent requests cannot clobber each
	// other's staging file
	path := filepath.Join(s.UploadsDir, fmt.Sprintf("bulk_clients_%s.csv", uuid.NewString()))
	if err := os.WriteFile(path, file, 0o644); err != nil {
		return "", err
	}

	taskID := s.Queue.Enqueue("process_bulk_clients", func(ctx context.Context) (any, error) {
		// import failures are reported through the polled result, never
		// to the queue's retry machinery
		return s.ProcessBulkClients(path, userID), nil
	})
	return taskID, nil
}

// ProcessBulkClients imports the staged CSV row by row. Bad rows are
// skipped and recorded; an unexpected failure aborts the loop and yields
// an error result, leaving already-created clients in place. The staging
// file is removed whatever happens.
func (s *ClientService) ProcessBulkClients(path string, userID uint) *BulkResult {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.Log.Warn("bulk upload cleanup failed", zap.String("path", path), zap.Error(err))
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return &BulkResult{Error: err.Error()}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return &BulkResult{Error: err.Error()}
	}
	if len(rows) == 0 {
		return &BulkResult{Errors: []string{}}
	}

	header := rows[0]
	data := rows[1:]
	if len(data) > maxBulkRows {
		return &BulkResult{Error: fmt.Sprintf("the file contains more than %d records", maxBulkRows)}
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	processed := 0
	errs := []string{}
	for _, row := range data {
		name := field(row, "name")
		email := field(row, "email")
		phone := field(row, "phone")

		if name == "" || email == "" {
			errs = append(errs, fmt.Sprintf("missing name or email in row: %v", row))
			continue
		}

		exists, err := s.Repo.EmailExists(email)
		if err != nil {
			return &BulkResult{Error: err.Error()}
		}
		if exists {
			errs = append(errs, fmt.Sprintf("email %s already exists", email))
			continue
		}

		c := entity.Client{Name: name, Email: email, Phone: phone, Status: true}
		if err := s.Repo.Create(&c); err != nil {
			return &BulkResult{Error: err.Error()}
		}
		processed++
	}

	s.Log.Info("bulk clients processed",
		zap.Uint("userId", userID),
		zap.Int("processed", processed),
		zap.Int("errors", len(errs)))
	return &BulkResult{Processed: processed, Errors: errs}
}

// BulkStatus polls the import task. done=false covers both unknown and
// still-running ids, matching the queue contract.
func (s *ClientService) BulkStatus(taskID string) (*BulkResult, bool) {
	res, done := s.Queue.Poll(taskID)
	if !done {
		return nil, false
	}
	if out, ok := res.Value.(*BulkResult); ok {
		return out, true
	}
	return &BulkResult{Error: "unexpected task result"}, true
}
