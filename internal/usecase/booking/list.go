package booking

import (
	"context"

	domain "github.com/PalcoServices/palco-hire/internal/domain/booking"
	"github.com/PalcoServices/palco-hire/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute retorna todas as contratações onde o usuário é artista ou
// ouvinte. Status legados são normalizados na saída.
func (uc *ListBookings) Execute(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	bs, err := uc.repo.ListBookingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range bs {
		bs[i].Status = string(domain.Normalize(domain.Status(bs[i].Status)))
	}

	return bs, nil
}
