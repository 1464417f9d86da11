package booking

import (
	"context"
	"time"

	"github.com/PalcoServices/palco-hire/internal/audit"
	domain "github.com/PalcoServices/palco-hire/internal/domain/booking"
	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/models"
)

type RejectBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRejectBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RejectBooking {
	return &RejectBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RejectBooking) Execute(
	ctx context.Context,
	artistID uint,
	bookingID string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForParty(ctx, bookingID, artistID, domain.RoleArtist)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Reject(b, domain.RoleArtist, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BookingID: b.ID,
		UserID:    &artistID,
		Action:    "booking_rejected",
		Entity:    "booking",
	})

	return b, nil
}
