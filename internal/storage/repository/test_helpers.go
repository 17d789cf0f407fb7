package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/slot-booker/internal/migrations"
	"github.com/magabrotheeeer/slot-booker/internal/models"
)

// setupTestDatabase поднимает контейнер PostgreSQL, применяет миграции
// и возвращает готовое хранилище вместе с функцией очистки.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	storage, err := New(connStr)
	require.NoError(t, err, "failed to create storage")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath), "failed to apply migrations")

	cleanup := func() {
		_ = storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}

// TestDataFactory содержит методы для создания тестовых данных.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его ID.
func (f *TestDataFactory) CreateUser(t *testing.T, email, name string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3) RETURNING id`,
		email, name, "hashedpassword").Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSlot создает тестовый слот и возвращает его ID.
// ownerID может быть nil, тогда слот создаётся свободным.
func (f *TestDataFactory) CreateSlot(t *testing.T, category string, start, end time.Time, ownerID *int) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO timeslots (category, start_time, end_time, user_id)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		category, start, end, ownerID).Scan(&id)
	require.NoError(t, err)
	return id
}

// GetTestSlotData возвращает стандартные тестовые данные слота.
func GetTestSlotData() models.TimeSlot {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	return models.TimeSlot{
		Category: "consultation",
		Start:    start,
		End:      start.Add(time.Hour),
	}
}

// VerifySlotOwner проверяет владельца слота прямым запросом к базе.
func VerifySlotOwner(t *testing.T, storage *Storage, slotID int, want *int) {
	var owner *int
	err := storage.DB.QueryRow("SELECT user_id FROM timeslots WHERE id = $1", slotID).Scan(&owner)
	require.NoError(t, err)
	if want == nil {
		require.Nil(t, owner)
	} else {
		require.NotNil(t, owner)
		require.Equal(t, *want, *owner)
	}
}
