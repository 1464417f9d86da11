package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/PalcoServices/palco-hire/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	bookingID string,
	userID *uint,
	action string,
	entity string,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		BookingID: bookingID,
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		Metadata:  metaJSON,
	}

	return l.db.Create(&log).Error
}
