package models

import "time"

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ArtistID uint `json:"artist_id"`
	Artist   User `gorm:"foreignKey:ArtistID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ListenerID uint `json:"listener_id"`
	Listener   User `gorm:"foreignKey:ListenerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Denormalizados no momento da criação, para exibição
	ArtistName     string `gorm:"size:100" json:"artist_name"`
	ArtistAvatar   string `gorm:"size:255" json:"artist_avatar"`
	ListenerName   string `gorm:"size:100" json:"listener_name"`
	ListenerAvatar string `gorm:"size:255" json:"listener_avatar"`

	EventType     string `gorm:"size:100" json:"event_type"`
	EventDate     string `gorm:"size:10" json:"event_date"` // YYYY-MM-DD
	EventTime     string `gorm:"size:5" json:"event_time"`  // HH:MM
	DurationHours int    `json:"duration_hours"`
	Location      string `gorm:"size:255" json:"location"`
	Notes         string `gorm:"size:500" json:"notes"`

	Status string `gorm:"size:30;default:'waiting_confirmation'" json:"status"`

	// Congelado na criação: hourly_rate x duration_hours
	TotalPrice float64 `json:"total_price"`

	ListenerConfirmed      bool `gorm:"default:false" json:"listener_confirmed"`
	ArtistConfirmed        bool `gorm:"default:false" json:"artist_confirmed"`
	PaymentDone            bool `gorm:"default:false" json:"payment_done"`
	ListenerFinalConfirmed bool `gorm:"default:false" json:"listener_final_confirmed"`
	ArtistFinalConfirmed   bool `gorm:"default:false" json:"artist_final_confirmed"`

	CancelReason string     `gorm:"size:255" json:"cancel_reason"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
