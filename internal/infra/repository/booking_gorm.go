package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/PalcoServices/palco-hire/internal/domain/booking"
	"github.com/PalcoServices/palco-hire/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Artist directory
// --------------------------------------------------

func (r *BookingGormRepository) GetArtist(
	ctx context.Context,
	artistID uint,
) (*models.User, *models.ArtistProfile, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", artistID, string(domain.RoleArtist)).
		First(&user).Error; err != nil {
		return nil, nil, err
	}

	var profile models.ArtistProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", artistID).
		First(&profile).Error; err != nil {
		return nil, nil, err
	}

	return &user, &profile, nil
}

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	userID uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// GetBookingForParty carrega uma contratação garantindo que o usuário é a
// parte correta (artista ou ouvinte) daquela transação.
func (r *BookingGormRepository) GetBookingForParty(
	ctx context.Context,
	bookingID string,
	userID uint,
	role domain.Role,
) (*models.Booking, error) {

	column := "listener_id"
	if role == domain.RoleArtist {
		column = "artist_id"
	}

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND "+column+" = ?", bookingID, userID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bs []models.Booking
	if err := r.db.WithContext(ctx).
		Where("artist_id = ? OR listener_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&bs).Error; err != nil {
		return nil, err
	}

	return bs, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
