package notify

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/bellenoire/salon-api/internal/models"
)

// Emitter appends Notification rows. Outside a transaction the write is
// best-effort: a failure is logged and never surfaces to the caller,
// so a lost notification cannot mask a successful booking operation.
type Emitter struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Emitter {
	return &Emitter{db: db}
}

func (e *Emitter) Emit(
	ctx context.Context,
	userID uint,
	typ string,
	title string,
	message string,
	link string,
) {
	n := models.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Link:    link,
	}

	if err := e.db.WithContext(ctx).Create(&n).Error; err != nil {
		log.Printf("notify: dropping %s for user %d: %v", typ, userID, err)
	}
}
