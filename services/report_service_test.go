package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/entity"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/apperr"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/repository"
)

func newReportService(t *testing.T, db *gorm.DB) *ReportService {
	t.Helper()
	return NewReportService(repository.NewReportRepository(db), newTestQueue(t), zap.NewNop(), t.TempDir())
}

func seedOrder(t *testing.T, db *gorm.DB, restID uint, total string, createdAt time.Time, active bool) {
	t.Helper()
	o := entity.Order{
		Model:        gorm.Model{CreatedAt: createdAt},
		RestaurantID: restID,
		StatusOrder:  entity.StatusOrderPending,
		Status:       active,
		Total:        decimal.RequireFromString(total),
	}
	require.NoError(t, db.Create(&o).Error)
}

func TestGenerateSalesReportCSV(t *testing.T) {
	db := newTestDB(t)
	owner := makeUser(t, db, "owner", entity.RoleOwner, nil)
	busy := makeRestaurant(t, db, "Busy Place", owner.ID)
	quiet := makeRestaurant(t, db, "Quiet Place", owner.ID)

	feb := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	seedOrder(t, db, busy.ID, "10.00", feb, true)
	seedOrder(t, db, busy.ID, "20.00", feb.AddDate(0, 0, 1), true)
	seedOrder(t, db, busy.ID, "5.50", feb.AddDate(0, 0, 2), true)
	seedOrder(t, db, quiet.ID, "7.25", feb, true)

	// outside the window and soft-deleted orders must not count
	seedOrder(t, db, busy.ID, "100.00", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true)
	seedOrder(t, db, busy.ID, "100.00", time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC), true)
	seedOrder(t, db, busy.ID, "100.00", feb, false)

	svc := newReportService(t, db)
	admin := makeUser(t, db, "admin", entity.RoleAdmin, nil)

	rr := &entity.ReportRequest{UserID: admin.ID, StatusReport: entity.ReportPending}
	require.NoError(t, db.Create(rr).Error)

	res, err := svc.Generate(2, 2025, rr.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ReportCompleted, res.StatusReport)
	require.Equal(t, "2025-02-01", res.ReportDate)
	require.Equal(t, "sales_report_2025_02.csv", filepath.Base(res.FilePath))

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)

	want := "id;name;total_sales;total_price_sales\n" +
		fmt.Sprintf("%d;Busy Place;3;35.50\n", busy.ID) +
		fmt.Sprintf("%d;Quiet Place;1;7.25\n", quiet.ID)
	require.Equal(t, want, string(data))

	var got entity.ReportRequest
	require.NoError(t, db.First(&got, rr.ID).Error)
	require.Equal(t, entity.ReportCompleted, got.StatusReport)
	require.NotNil(t, got.ReportDate)
	require.Equal(t, "2025-02-01", got.ReportDate.Format("2006-01-02"))
}

func TestRequestValidatesMonth(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(t, db)

	_, _, err := svc.Request(1, 0, 2025)
	require.True(t, apperr.IsValidation(err))
	_, _, err = svc.Request(1, 13, 2025)
	require.True(t, apperr.IsValidation(err))
}

func TestReportDownloadIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	owner := makeUser(t, db, "owner", entity.RoleOwner, nil)
	rest := makeRestaurant(t, db, "Busy Place", owner.ID)
	seedOrder(t, db, rest.ID, "10.00", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), true)

	svc := newReportService(t, db)

	taskID, requestID, err := svc.Request(owner.ID, 2, 2025)
	require.NoError(t, err)
	require.NotEmpty(t, taskID)
	require.NotZero(t, requestID)

	var data []byte
	var filename string
	require.Eventually(t, func() bool {
		data, filename, err = svc.Download(owner.ID, taskID)
		return !errors.Is(err, ErrReportNotReady)
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, "sales_report_2025_02.csv", filename)
	require.Contains(t, string(data), "Busy Place")

	// the file is gone after the first successful download
	_, _, err = svc.Download(owner.ID, taskID)
	require.True(t, apperr.IsNotFound(err))
}

func TestReportDownloadScopedToRequester(t *testing.T) {
	db := newTestDB(t)
	owner := makeUser(t, db, "owner", entity.RoleOwner, nil)
	stranger := makeUser(t, db, "stranger", entity.RoleOwner, nil)

	svc := newReportService(t, db)

	taskID, _, err := svc.Request(owner.ID, 2, 2025)
	require.NoError(t, err)

	_, _, err = svc.Download(stranger.ID, taskID)
	require.True(t, apperr.IsNotFound(err))

	_, _, err = svc.Download(owner.ID, "no-such-task")
	require.True(t, apperr.IsNotFound(err))
}

func TestFailedGenerationMarksRequest(t *testing.T) {
	db := newTestDB(t)
	owner := makeUser(t, db, "owner", entity.RoleOwner, nil)

	svc := newReportService(t, db)
	// a file where the reports directory should be makes MkdirAll fail
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	svc.ReportsDir = blocker

	taskID, requestID, err := svc.Request(owner.ID, 2, 2025)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		var rr entity.ReportRequest
		if err := db.First(&rr, requestID).Error; err != nil {
			return false
		}
		return rr.StatusReport == entity.ReportFailed
	}, 2*time.Second, 10*time.Millisecond)

	_, _, err = svc.Download(owner.ID, taskID)
	require.Error(t, err)
}

func TestListReportRequests(t *testing.T) {
	db := newTestDB(t)
	owner := makeUser(t, db, "owner", entity.RoleOwner, nil)
	other := makeUser(t, db, "other", entity.RoleOwner, nil)

	svc := newReportService(t, db)
	for i := 0; i < 3; i++ {
		_, _, err := svc.Request(owner.ID, 2, 2025)
		require.NoError(t, err)
	}
	_, _, err := svc.Request(other.ID, 2, 2025)
	require.NoError(t, err)

	rows, total, err := svc.ListRequests(owner.ID, 1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
}
