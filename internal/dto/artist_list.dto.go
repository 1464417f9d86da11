package dto

type ArtistDTO struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	AvatarURL     string  `json:"avatar_url"`
	Verified      bool    `json:"verified"`
	HourlyRate    float64 `json:"hourly_rate"`
	Genre         string  `json:"genre"`
	Location      string  `json:"location"`
	Rating        float64 `json:"rating"`
	TotalBookings int     `json:"total_bookings"`
	Bio           string  `json:"bio"`
	Available     bool    `json:"available"`
}
