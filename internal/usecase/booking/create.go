package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PalcoServices/palco-hire/internal/audit"
	domain "github.com/PalcoServices/palco-hire/internal/domain/booking"
	"github.com/PalcoServices/palco-hire/internal/httperr"
	"github.com/PalcoServices/palco-hire/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ListenerID uint

	ArtistID uint

	EventType     string
	EventDate     string // YYYY-MM-DD
	EventTime     string // HH:MM
	DurationHours int
	Location      string
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1️⃣ Artista (diretório, somente leitura)
	// --------------------------------------------------
	artist, profile, err := uc.repo.GetArtist(ctx, in.ArtistID)
	if err != nil {
		return nil, httperr.ErrBusiness("artist_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Ouvinte (denormalizado no registro)
	// --------------------------------------------------
	listener, err := uc.repo.GetUser(ctx, in.ListenerID)
	if err != nil {
		return nil, httperr.ErrBusiness("listener_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Data / hora do evento
	// --------------------------------------------------
	if _, err := time.Parse("2006-01-02", in.EventDate); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if _, err := time.Parse("15:04", in.EventTime); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 4️⃣ Preço congelado na criação
	// --------------------------------------------------
	if err := domain.ValidateCreate(in.ArtistID, in.DurationHours, profile.HourlyRate); err != nil {
		return nil, err
	}

	total := domain.TotalPrice(profile.HourlyRate, in.DurationHours)

	// --------------------------------------------------
	// 5️⃣ Criação (status centralizado)
	// --------------------------------------------------
	b := &models.Booking{
		ID: uuid.NewString(),

		ArtistID:       in.ArtistID,
		ListenerID:     in.ListenerID,
		ArtistName:     artist.Name,
		ArtistAvatar:   artist.AvatarURL,
		ListenerName:   listener.Name,
		ListenerAvatar: listener.AvatarURL,

		EventType:     in.EventType,
		EventDate:     in.EventDate,
		EventTime:     in.EventTime,
		DurationHours: in.DurationHours,
		Location:      in.Location,
		Notes:         in.Notes,

		Status:     string(domain.InitialStatus()),
		TotalPrice: total,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BookingID: b.ID,
		UserID:    &in.ListenerID,
		Action:    "booking_created",
		Entity:    "booking",
		Metadata: map[string]any{
			"total_price": total,
			"artist_id":   in.ArtistID,
		},
	})

	return b, nil
}
