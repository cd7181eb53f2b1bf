package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/tiffin-admin/internal/migrations"
	"github.com/magabrotheeeer/tiffin-admin/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateCustomer создает тестового клиента.
func (f *TestDataFactory) CreateCustomer(t *testing.T, customer models.Customer) {
	t.Helper()
	require.NoError(t, f.storage.CreateCustomer(context.Background(), customer))
}

// CreateOverride создает тестовую отметку посещаемости.
func (f *TestDataFactory) CreateOverride(t *testing.T, override models.AttendanceOverride) {
	t.Helper()
	require.NoError(t, f.storage.UpsertOverride(context.Background(), override))
}

// CreateRawMenuDay вставляет документ меню с произвольным JSON слотов,
// в обход канонической сериализации. Нужен для проверки чтения записей
// старых форматов.
func (f *TestDataFactory) CreateRawMenuDay(t *testing.T, date time.Time, lunchJSON, dinnerJSON string) {
	t.Helper()
	var lunch, dinner any
	if lunchJSON != "" {
		lunch = []byte(lunchJSON)
	}
	if dinnerJSON != "" {
		dinner = []byte(dinnerJSON)
	}
	_, err := f.storage.DB.Exec(`INSERT INTO menu_days (date, lunch, dinner, updated_at)
		VALUES ($1, $2, $3, $4)`, date, lunch, dinner, time.Now().UTC())
	require.NoError(t, err)
}

func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath), "failed to run migrations")

	cleanup := func() {
		if err := storage.DB.Close(); err != nil {
			t.Logf("failed to close storage: %v", err)
		}
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return storage, cleanup
}
