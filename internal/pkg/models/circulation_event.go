package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CirculationEvent is the audit record emitted to Kafka for every ledger
// mutation.
type CirculationEvent struct {
	TransactionId string    `json:"transactionId"`
	Event         string    `json:"event"`
	DueId         string    `json:"dueId"`
	BookId        string    `json:"bookId"`
	MemberId      string    `json:"memberId"`
	FineAmount    int64     `json:"fineAmount"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// FailedEvent dead-letters a circulation event whose Kafka publish failed so
// the retry endpoint can replay it.
type FailedEvent struct {
	FailedEventId primitive.ObjectID `bson:"_id,omitempty"`
	Key           string             `bson:"key"`
	Payload       string             `bson:"payload"`
	Attempts      int32              `bson:"attempts"`
	CreatedAt     time.Time          `bson:"createdAt"`
}
