package workers

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hollowlog/burrow/activitypub"
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

// A DeliveryQueue queues outbound activities for the delivery processor. It
// is the hand-off point between a handler and the transport; queuing happens
// in the handler's failure domain, delivery in the processor's.
type DeliveryQueue struct {
	db *gorm.DB
}

func NewDeliveryQueue(db *gorm.DB) *DeliveryQueue {
	return &DeliveryQueue{db: db}
}

func (q *DeliveryQueue) Deliver(from *models.Actor, inbox string, activity map[string]any) error {
	return q.db.Create(&models.DeliveryRequest{
		ActorID:  from.ID,
		InboxURL: inbox,
		Activity: activity,
	}).Error
}

// NewDeliveryProcessor posts queued outbound activities to their remote
// inboxes. Delivery is best effort; a failed attempt is recorded on the row
// and retried on a later pass, it never reaches back into whatever storage
// change produced the activity.
func NewDeliveryProcessor(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		log.Info("delivery processor started")
		defer log.Info("delivery processor stopped")

		db := db.WithContext(ctx)
		for {
			if err := process(db, deliveryScope, processDelivery); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(30 * time.Second):
				// continue
			}
		}
	}
}

func deliveryScope(db *gorm.DB) *gorm.DB {
	return db.Preload("Actor").Where("attempts < 3")
}

func processDelivery(db *gorm.DB, request *models.DeliveryRequest) error {
	account, err := models.NewAccounts(db).AccountForActor(request.Actor)
	if err != nil {
		return err
	}
	client, err := activitypub.NewClient(account)
	if err != nil {
		return err
	}
	log.Debug("delivering", "inbox", request.InboxURL, "attempts", request.Attempts)
	return client.Post(db.Statement.Context, request.InboxURL, request.Activity)
}
