package booking

import (
	"context"

	"github.com/PalcoServices/palco-hire/internal/models"
)

type Repository interface {
	// -------- Artist directory --------
	GetArtist(
		ctx context.Context,
		artistID uint,
	) (*models.User, *models.ArtistProfile, error)

	GetUser(
		ctx context.Context,
		userID uint,
	) (*models.User, error)

	// -------- Booking (create) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBookingForParty(
		ctx context.Context,
		bookingID string,
		userID uint,
		role Role,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listing --------
	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)
}
