package booking

import (
	"context"
	"time"

	"github.com/PalcoServices/palco-hire/internal/audit"
	domain "github.com/PalcoServices/palco-hire/internal/domain/booking"
	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/models"
)

// ConfirmFinalBooking registra a confirmação final pós-pagamento. As duas
// partes precisam confirmar; a segunda confirmação conclui a contratação.
type ConfirmFinalBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmFinalBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmFinalBooking {
	return &ConfirmFinalBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmFinalBooking) Execute(
	ctx context.Context,
	userID uint,
	role domain.Role,
	bookingID string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForParty(ctx, bookingID, userID, role)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.ConfirmFinal(b, role, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	action := "booking_final_confirmed"
	if b.Status == string(domain.StatusCompleted) {
		action = "booking_completed"
	}

	uc.audit.Dispatch(audit.Event{
		BookingID: b.ID,
		UserID:    &userID,
		Action:    action,
		Entity:    "booking",
		Metadata:  map[string]any{"role": string(role)},
	})

	return b, nil
}
