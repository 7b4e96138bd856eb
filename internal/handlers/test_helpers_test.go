package handlers

import (
	"database/sql"
	"os"
	"testing"

	"clinic-api/internal/database"
	"clinic-api/internal/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

const testJWTSecret = "clinic_test_jwt_secret_key_1234567890"

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_SECRET", testJWTSecret)
	gin.SetMode(gin.TestMode)
	code := m.Run()
	os.Exit(code)
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	previousDB := database.DB
	database.DB = db

	cleanup := func() {
		database.DB = previousDB
		_ = db.Close()
	}

	return db, mock, cleanup
}

func withTestUserID(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, userID)
		c.Next()
	}
}

func mustStatus(t *testing.T, actual int, expected int) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

func dataField(t *testing.T, out map[string]any, key string) map[string]any {
	t.Helper()
	data, ok := out["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %#v", out["data"])
	}
	field, ok := data[key].(map[string]any)
	if !ok {
		t.Fatalf("expected data.%s object, got %#v", key, data[key])
	}
	return field
}
