package booking

import "github.com/PalcoServices/palco-hire/internal/httperr"

// TotalPrice calcula o preço congelado na criação: tarifa por hora do
// artista x duração em horas inteiras. Nunca é recalculado depois.
func TotalPrice(hourlyRate float64, durationHours int) float64 {
	return hourlyRate * float64(durationHours)
}

// ValidateCreate valida os dados de uma nova contratação.
func ValidateCreate(artistID uint, durationHours int, hourlyRate float64) error {
	if artistID == 0 {
		return httperr.ErrBusiness("artist_required")
	}
	if durationHours < 1 {
		return httperr.ErrBusiness("invalid_duration")
	}
	if TotalPrice(hourlyRate, durationHours) <= 0 {
		return httperr.ErrBusiness("invalid_price")
	}
	return nil
}
