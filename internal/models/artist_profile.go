package models

import "time"

// Perfil público de artista, 1:1 com User (role = artist)
type ArtistProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Genre    string `gorm:"size:50" json:"genre"`
	Location string `gorm:"size:100" json:"location"`
	Bio      string `gorm:"size:500" json:"bio"`
	About    string `gorm:"type:text" json:"about"`

	HourlyRate float64 `json:"hourly_rate"`
	Verified   bool    `gorm:"default:false" json:"verified"`
	Available  bool    `gorm:"default:true" json:"available"`

	Rating        float64 `gorm:"default:0" json:"rating"`
	TotalBookings int     `gorm:"default:0" json:"total_bookings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
