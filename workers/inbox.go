package workers

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hollowlog/burrow/activitypub"
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

// NewInboxProcessor drains queued inbound activities through the
// reconciliation engine. A row whose handling fails with a storage error
// stays queued with its attempt bookkeeping updated; every other outcome,
// the silent no-ops included, finishes the row.
func NewInboxProcessor(db *gorm.DB, domain string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		log.Info("inbox processor started")
		defer log.Info("inbox processor stopped")

		db := db.WithContext(ctx)
		processor := activitypub.NewProcessor(db, domain, NewDeliveryQueue(db))
		for {
			if err := process(db, inboxScope, func(db *gorm.DB, request *models.InboxRequest) error {
				return processor.Process(request.Activity)
			}); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
				// continue
			}
		}
	}
}

func inboxScope(db *gorm.DB) *gorm.DB {
	return db.Where("attempts < 3")
}
