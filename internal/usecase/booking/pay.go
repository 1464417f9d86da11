package booking

import (
	"context"
	"time"

	"github.com/PalcoServices/palco-hire/internal/audit"
	domain "github.com/PalcoServices/palco-hire/internal/domain/booking"
	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/models"
)

// PayBooking registra o pagamento de uma contratação já aceita pelo
// artista. A confirmação do pagamento em si acontece no cliente (processo
// assíncrono); aqui fica a guarda autoritativa de estado.
type PayBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPayBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *PayBooking {
	return &PayBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *PayBooking) Execute(
	ctx context.Context,
	listenerID uint,
	bookingID string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForParty(ctx, bookingID, listenerID, domain.RoleListener)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.MarkPaid(b, domain.RoleListener, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BookingID: b.ID,
		UserID:    &listenerID,
		Action:    "booking_paid",
		Entity:    "booking",
		Metadata:  map[string]any{"total_price": b.TotalPrice},
	})

	return b, nil
}
