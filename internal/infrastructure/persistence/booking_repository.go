package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentalops/backend/internal/domain/revenue"
	"github.com/rentalops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBookingRepository implements revenue.BookingRepository
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by ID within the organization
func (r *GormBookingRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*revenue.Booking, error) {
	var model models.BookingModel
	err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&model).Error
	if err != nil {
		return nil, translateError("find booking", err)
	}
	return model.ToDomain(), nil
}

// FindForPeriod returns non-cancelled bookings whose check-in falls in the query range.
// CheckInTo is inclusive of the whole day.
func (r *GormBookingRepository) FindForPeriod(ctx context.Context, tenantID uuid.UUID, query revenue.BookingQuery) ([]revenue.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&models.BookingModel{}).
		Where("tenant_id = ? AND status <> ?", tenantID, string(revenue.BookingStatusCancelled))
	if query.CheckInFrom != nil {
		q = q.Where("check_in >= ?", startOfDay(*query.CheckInFrom))
	}
	if query.CheckInTo != nil {
		q = q.Where("check_in < ?", startOfDay(*query.CheckInTo).AddDate(0, 0, 1))
	}
	if len(query.PropertyIDs) > 0 {
		q = q.Where("property_id IN ?", query.PropertyIDs)
	}

	var rows []models.BookingModel
	if err := q.Order("check_in ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError("find bookings", err)
	}
	bookings := make([]revenue.Booking, len(rows))
	for i := range rows {
		bookings[i] = *rows[i].ToDomain()
	}
	return bookings, nil
}

var _ revenue.BookingRepository = (*GormBookingRepository)(nil)
