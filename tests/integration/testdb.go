//go:build integration

// Package integration runs the revenue engine against a real PostgreSQL started with
// testcontainers. Run with: go test -tags integration ./tests/integration/...
package integration

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/infrastructure/migration"
	"github.com/rentalops/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// Shared container for all tests in the package
	sharedContainer    testcontainers.Container
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
)

// TestDB represents a test database connection
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	DSN   string
	t     *testing.T
}

// NewSharedTestDB returns a connection to the package's PostgreSQL container, starting
// and migrating it on first use. Tests isolate themselves by organization id.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	ctx := context.Background()

	if sharedContainer == nil {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("rentalops_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err, "Failed to start shared PostgreSQL container")

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err, "Failed to get connection string")

		sharedContainer = container
		sharedContainerDSN = dsn

		_, sqlDB := connectToDatabase(t, dsn)
		runMigrations(t, sqlDB)
		sqlDB.Close()
	}

	db, sqlDB := connectToDatabase(t, sharedContainerDSN)
	testDB := &TestDB{
		DB:    db,
		SqlDB: sqlDB,
		DSN:   sharedContainerDSN,
		t:     t,
	}
	t.Cleanup(func() {
		testDB.SqlDB.Close()
	})
	return testDB
}

// connectToDatabase establishes a GORM connection to the database
func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}

// runMigrations applies the embedded schema, the same one cmd/migrate ships
func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	m, err := migration.New(sqlDB, "", zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")
}

// CleanupSharedContainer terminates the shared container. Called from TestMain.
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerDSN = ""
	}
}

// CreateStakeholder inserts a directory entry and returns its id
func (tdb *TestDB) CreateStakeholder(tenantID uuid.UUID, kind revenue.StakeholderType, name string) uuid.UUID {
	tdb.t.Helper()

	m := models.StakeholderModel{
		TenantModel: models.NewTenantModel(tenantID),
		Name:        name,
		Kind:        string(kind),
	}
	require.NoError(tdb.t, tdb.DB.Create(&m).Error, "Failed to create stakeholder")
	return m.ID
}

// PropertyFixture describes a property to insert
type PropertyFixture struct {
	Name            string
	OwnerID         uuid.UUID
	ReferralAgentID *uuid.UUID
	RetailAgentID   *uuid.UUID
}

// CreateProperty inserts an active property and returns its id
func (tdb *TestDB) CreateProperty(tenantID uuid.UUID, p PropertyFixture) uuid.UUID {
	tdb.t.Helper()

	m := models.PropertyModel{
		TenantModel:     models.NewTenantModel(tenantID),
		Name:            p.Name,
		OwnerID:         p.OwnerID,
		ReferralAgentID: p.ReferralAgentID,
		RetailAgentID:   p.RetailAgentID,
		IsActive:        true,
	}
	require.NoError(tdb.t, tdb.DB.Create(&m).Error, "Failed to create property")
	return m.ID
}

// BookingFixture describes a booking to insert
type BookingFixture struct {
	PropertyID   uuid.UUID
	Channel      string
	CheckIn      time.Time
	Nights       int
	Total        decimal.Decimal
	PlatformFees *decimal.Decimal
	Status       revenue.BookingStatus
}

// CreateBooking inserts a booking and returns its id
func (tdb *TestDB) CreateBooking(tenantID uuid.UUID, b BookingFixture) uuid.UUID {
	tdb.t.Helper()

	status := b.Status
	if status == "" {
		status = revenue.BookingStatusCompleted
	}
	nights := b.Nights
	if nights == 0 {
		nights = 1
	}
	m := models.BookingModel{
		TenantModel: models.NewTenantModel(tenantID),
		PropertyID:  b.PropertyID,
		Channel:     b.Channel,
		GuestName:   "Integration Guest",
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckIn.AddDate(0, 0, nights),
		TotalAmount: b.Total,
		Status:      string(status),
	}
	if b.PlatformFees != nil {
		m.PlatformFees = decimal.NewNullDecimal(*b.PlatformFees)
	}
	require.NoError(tdb.t, tdb.DB.Create(&m).Error, "Failed to create booking")
	return m.ID
}
