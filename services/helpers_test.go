package services

import (
	"testing"
	"time"

	"github.com/IditAvrahami/TabBuddy/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Drug{},
		&models.MealSchedule{},
		&models.DrugSchedule{},
		&models.NotificationOverride{},
	))
	return db
}

func testLogger() *zap.SugaredLogger {
	l, _ := zap.NewDevelopment()
	return l.Sugar()
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func uintPtr(u uint) *uint    { return &u }

func createDrug(t *testing.T, db *gorm.DB, name string) *models.Drug {
	t.Helper()
	drug := models.Drug{Name: name, Kind: "pill", AmountPerDose: 1, Duration: 7, AmountPerDay: 1}
	require.NoError(t, db.Create(&drug).Error)
	return &drug
}

func createSchedule(t *testing.T, db *gorm.DB, sched *models.DrugSchedule) *models.DrugSchedule {
	t.Helper()
	if sched.FrequencyPerDay == 0 {
		sched.FrequencyPerDay = 1
	}
	sched.IsActive = true
	require.NoError(t, db.Create(sched).Error)
	return sched
}

func createAbsoluteSchedule(t *testing.T, db *gorm.DB, drugID uint, clock string, start time.Time, end *time.Time) *models.DrugSchedule {
	t.Helper()
	return createSchedule(t, db, &models.DrugSchedule{
		DrugID:         drugID,
		DependencyType: models.DependencyAbsolute,
		StartDate:      start,
		EndDate:        end,
		AbsoluteTime:   strPtr(clock),
	})
}
