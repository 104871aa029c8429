// Command seed fills a development database with a demo organization: stakeholders,
// properties with routing and expenses, bookings across recent months and staff wages.
// It prints a development access token for the organization when done.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/infrastructure/auth"
	"github.com/rentalops/backend/internal/infrastructure/config"
	"github.com/rentalops/backend/internal/infrastructure/logger"
	"github.com/rentalops/backend/internal/infrastructure/persistence"
	"github.com/rentalops/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var channels = []string{"airbnb", "booking_com", "vrbo", "direct"}

type seedOptions struct {
	organizationID uuid.UUID
	properties     int
	bookings       int
	months         int
	staff          int
	seed           uint64
}

func main() {
	var (
		orgID    string
		opts     seedOptions
		logLevel string
		tokenTTL time.Duration
	)
	flag.StringVar(&orgID, "org", "", "Organization ID (default: app.default_organization_id or a new ID)")
	flag.IntVar(&opts.properties, "properties", 5, "Number of properties")
	flag.IntVar(&opts.bookings, "bookings", 12, "Bookings per property")
	flag.IntVar(&opts.months, "months", 3, "Spread bookings over this many past months")
	flag.IntVar(&opts.staff, "staff", 3, "Number of staff wage entries")
	flag.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 = random)")
	flag.DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "Lifetime of the printed access token")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production environment")
	}

	if orgID == "" {
		orgID = cfg.App.DefaultOrganizationID
	}
	if orgID == "" {
		opts.organizationID = uuid.New()
	} else if opts.organizationID, err = uuid.Parse(orgID); err != nil {
		log.Fatal("Invalid organization ID", zap.String("value", orgID))
	}

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel("warn")))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	summary, err := seed(ctx, db, gofakeit.New(opts.seed), opts)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seed complete",
		zap.String("organization_id", opts.organizationID.String()),
		zap.Int("stakeholders", summary.stakeholders),
		zap.Int("properties", summary.properties),
		zap.Int("bookings", summary.bookings),
		zap.Int("staff_wages", summary.staffWages),
	)

	token, err := auth.NewJWTService(cfg.JWT).Issue(auth.IssueInput{
		TenantID: opts.organizationID,
		UserID:   uuid.New(),
		Username: "seed-admin",
		Permissions: []string{
			auth.PermissionRevenueRead,
			auth.PermissionRevenueSettings,
			auth.PermissionPayoutManage,
		},
		TTL: tokenTTL,
	})
	if err != nil {
		log.Fatal("Failed to issue access token", zap.Error(err))
	}
	fmt.Println("Access token:")
	fmt.Println(token)
}

type seedSummary struct {
	stakeholders int
	properties   int
	bookings     int
	staffWages   int
}

// seed writes the demo data in one transaction
func seed(ctx context.Context, db *persistence.Database, faker *gofakeit.Faker, opts seedOptions) (seedSummary, error) {
	var summary seedSummary
	tenantID := opts.organizationID

	err := db.Transaction(ctx, func(tx *gorm.DB) error {
		settingsRepo := persistence.NewGormCommissionSettingsRepository(tx)
		propertyRepo := persistence.NewGormPropertyRepository(tx)
		staffRepo := persistence.NewGormStaffWageRepository(tx)

		newStakeholder := func(kind revenue.StakeholderType, name string) (uuid.UUID, error) {
			m := models.StakeholderModel{
				TenantModel: models.NewTenantModel(tenantID),
				Name:        name,
				Kind:        string(kind),
				Email:       faker.Email(),
			}
			if err := tx.Create(&m).Error; err != nil {
				return uuid.Nil, fmt.Errorf("create %s: %w", kind, err)
			}
			summary.stakeholders++
			return m.ID, nil
		}

		if err := settingsRepo.SaveOrganizationRates(ctx, tenantID, revenue.DefaultCommissionRates()); err != nil {
			return fmt.Errorf("save organization rates: %w", err)
		}

		managerID, err := newStakeholder(revenue.StakeholderPropertyManager, faker.Name())
		if err != nil {
			return err
		}
		referralID, err := newStakeholder(revenue.StakeholderReferralAgent, faker.Name())
		if err != nil {
			return err
		}
		retailID, err := newStakeholder(revenue.StakeholderRetailAgent, faker.Name())
		if err != nil {
			return err
		}

		var propertyIDs []uuid.UUID
		for i := 0; i < opts.properties; i++ {
			ownerID, err := newStakeholder(revenue.StakeholderOwner, faker.Name())
			if err != nil {
				return err
			}
			property := models.PropertyModel{
				TenantModel: models.NewTenantModel(tenantID),
				Name:        fmt.Sprintf("%s %s", faker.City(), faker.RandomString([]string{"Villa", "Loft", "Cabin", "Apartment"})),
				OwnerID:     ownerID,
				IsActive:    true,
			}
			// Roughly half the portfolio came through agents.
			if faker.Bool() {
				property.ReferralAgentID = &referralID
			}
			if faker.Bool() {
				property.RetailAgentID = &retailID
			}
			if err := tx.Create(&property).Error; err != nil {
				return fmt.Errorf("create property: %w", err)
			}
			propertyIDs = append(propertyIDs, property.ID)
			summary.properties++

			if err := settingsRepo.SaveOverride(ctx, tenantID, revenue.OverrideScopeProperty, property.ID,
				revenue.CommissionOverride{PMUserID: &managerID}); err != nil {
				return fmt.Errorf("assign manager: %w", err)
			}
			if err := seedRouting(ctx, propertyRepo, faker, tenantID, property.ID); err != nil {
				return err
			}
			if err := propertyRepo.ReplaceDefaultExpenses(ctx, tenantID, property.ID, []revenue.DefaultExpense{
				{ExpenseType: "cleaning", Amount: money(faker, 40, 120), Description: "Turnover cleaning"},
				{ExpenseType: "supplies", Amount: money(faker, 10, 40), Description: "Guest amenities"},
			}); err != nil {
				return fmt.Errorf("default expenses: %w", err)
			}

			for j := 0; j < opts.bookings; j++ {
				if err := tx.Create(newBooking(faker, tenantID, property.ID, opts.months)).Error; err != nil {
					return fmt.Errorf("create booking: %w", err)
				}
				summary.bookings++
			}
		}

		for i := 0; i < opts.staff; i++ {
			staffName := faker.Name()
			staffID, err := newStakeholder(revenue.StakeholderStaff, staffName)
			if err != nil {
				return err
			}
			billTo := revenue.BillToCompany
			var propertyID *uuid.UUID
			if len(propertyIDs) > 0 && faker.Bool() {
				billTo = revenue.BillToOwner
				id := propertyIDs[faker.IntN(len(propertyIDs))]
				propertyID = &id
			}
			wage, err := revenue.NewStaffWageConfig(tenantID, staffID, staffName, money(faker, 1500, 4000), billTo, propertyID)
			if err != nil {
				return err
			}
			if err := staffRepo.Save(ctx, wage); err != nil {
				return fmt.Errorf("save staff wage: %w", err)
			}
			summary.staffWages++
		}
		return nil
	})
	return summary, err
}

func seedRouting(ctx context.Context, repo *persistence.GormPropertyRepository, faker *gofakeit.Faker, tenantID, propertyID uuid.UUID) error {
	for _, channel := range channels {
		routingType := revenue.RoutingCompany100
		owner, company := decimal.Zero, decimal.Zero
		switch channel {
		case "direct":
			routingType = revenue.RoutingOwner100
		case "vrbo":
			routingType = revenue.RoutingSplit
			owner = decimal.NewFromInt(int64(faker.IntRange(20, 80)))
			company = decimal.NewFromInt(100).Sub(owner)
		}
		routing, err := revenue.NewChannelRouting(routingType, owner, company)
		if err != nil {
			return err
		}
		if err := repo.SaveChannelRouting(ctx, tenantID, propertyID, channel, routing); err != nil {
			return fmt.Errorf("save %s routing: %w", channel, err)
		}
	}
	return nil
}

func newBooking(faker *gofakeit.Faker, tenantID, propertyID uuid.UUID, months int) *models.BookingModel {
	now := time.Now().UTC()
	checkIn := faker.DateRange(now.AddDate(0, -months, 0), now).Truncate(24 * time.Hour)
	nights := faker.IntRange(1, 10)
	total := money(faker, 80, 400).Mul(decimal.NewFromInt(int64(nights)))

	status := revenue.BookingStatusCompleted
	if checkIn.AddDate(0, 0, nights).After(now) {
		status = revenue.BookingStatusConfirmed
	}
	if faker.Number(1, 10) == 1 {
		status = revenue.BookingStatusCancelled
	}

	booking := &models.BookingModel{
		TenantModel: models.NewTenantModel(tenantID),
		PropertyID:  propertyID,
		Channel:     channels[faker.IntN(len(channels))],
		GuestName:   faker.Name(),
		CheckIn:     checkIn,
		CheckOut:    checkIn.AddDate(0, 0, nights),
		TotalAmount: total,
		Status:      string(status),
	}
	// Direct bookings carry no platform fees; others record them most of the time.
	if booking.Channel != "direct" && faker.Bool() {
		booking.PlatformFees = decimal.NewNullDecimal(total.Mul(decimal.NewFromFloat(0.03)).Round(2))
	}
	return booking
}

func money(faker *gofakeit.Faker, lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(faker.Float64Range(lo, hi)).Round(2)
}
