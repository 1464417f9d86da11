package booking

import (
	"context"
	"time"

	"github.com/PalcoServices/palco-hire/internal/audit"
	domain "github.com/PalcoServices/palco-hire/internal/domain/booking"
	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/models"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	listenerID uint,
	bookingID string,
	reason string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForParty(ctx, bookingID, listenerID, domain.RoleListener)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Cancel(b, domain.RoleListener, reason, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BookingID: b.ID,
		UserID:    &listenerID,
		Action:    "booking_cancelled",
		Entity:    "booking",
		Metadata:  map[string]any{"reason": reason},
	})

	return b, nil
}
