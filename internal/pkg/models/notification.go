package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemberNotification struct {
	NotificationId primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberId       primitive.ObjectID `bson:"memberId" json:"memberId"`
	Event          string             `bson:"event" json:"event"`
	Message        string             `bson:"message" json:"message"`
	Read           bool               `bson:"read" json:"read"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// NotificationPayload is the Pub/Sub wire format consumed by the delivery
// service.
type NotificationPayload struct {
	MemberId string `json:"memberId"`
	Event    string `json:"event"`
	Message  string `json:"message"`
}
