package models

import (
	"time"

	"github.com/hollowlog/burrow/internal/snowflake"
)

// A Request is the base of a queued unit of background work. Requests are
// drained by the processors in the workers package; a failed attempt updates
// the bookkeeping columns and the row is retried on a later pass.
type Request struct {
	ID uint32 `gorm:"primarykey;"`
	// CreatedAt is the time the request was created.
	CreatedAt time.Time
	// UpdatedAt is the time the request was last updated.
	UpdatedAt time.Time
	// Attempts is the number of times the request has been attempted.
	Attempts uint32 `gorm:"not null;default:0"`
	// LastAttempt is the time the request was last attempted.
	LastAttempt time.Time
	// LastResult is the result of the last attempt if it failed.
	LastResult string `gorm:"type:text;"`
}

// An InboxRequest is a signature-verified inbound activity waiting to be
// reconciled. Rows are unordered and at-least-once; the reconciliation
// handlers are idempotent so redelivery is harmless.
type InboxRequest struct {
	Request
	// Activity is the decoded activity document.
	Activity map[string]any `gorm:"serializer:json;not null"`
}

// A DeliveryRequest is an outbound activity, eg. the Accept response to a
// Follow, waiting to be delivered to a remote inbox. Delivery is best
// effort and independent of whatever storage change produced it.
type DeliveryRequest struct {
	Request
	// ActorID is the local actor the delivery is signed as.
	ActorID snowflake.ID `gorm:"not null;"`
	Actor   *Actor       `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	// InboxURL is the remote inbox the activity is posted to.
	InboxURL string `gorm:"size:128;not null"`
	// Activity is the activity document to deliver.
	Activity map[string]any `gorm:"serializer:json;not null"`
}
