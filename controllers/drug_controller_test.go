package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/IditAvrahami/TabBuddy/config"
	"github.com/IditAvrahami/TabBuddy/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDrugRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Drug{},
		&models.MealSchedule{},
		&models.DrugSchedule{},
		&models.NotificationOverride{},
	))
	config.DB = db
	l, _ := zap.NewDevelopment()
	config.Logger = l.Sugar()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/drugs", AddDrug)
	r.PUT("/drugs/:id", UpdateDrug)
	return r
}

func drugBody(name string) string {
	return fmt.Sprintf(`{"name":%q,"kind":"pill","amount_per_dose":1}`, name)
}

func TestAddDrugDuplicateName(t *testing.T) {
	r := setupDrugRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/drugs", strings.NewReader(drugBody("Aspirin"))))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/drugs", strings.NewReader(drugBody("Aspirin"))))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "drug already exists")
}

func TestUpdateDrugRenameToExistingName(t *testing.T) {
	r := setupDrugRouter(t)

	first := models.Drug{Name: "Aspirin", Kind: "pill", AmountPerDose: 1}
	second := models.Drug{Name: "Ibuprofen", Kind: "pill", AmountPerDose: 1}
	require.NoError(t, config.DB.Create(&first).Error)
	require.NoError(t, config.DB.Create(&second).Error)

	url := fmt.Sprintf("/drugs/%d", second.ID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, url, strings.NewReader(drugBody("Aspirin"))))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "drug already exists")
}

func TestUpdateDrugKeepingOwnNameSucceeds(t *testing.T) {
	r := setupDrugRouter(t)

	drug := models.Drug{Name: "Aspirin", Kind: "pill", AmountPerDose: 1}
	require.NoError(t, config.DB.Create(&drug).Error)

	url := fmt.Sprintf("/drugs/%d", drug.ID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, url, strings.NewReader(drugBody("Aspirin"))))
	assert.Equal(t, http.StatusOK, w.Code)
}
