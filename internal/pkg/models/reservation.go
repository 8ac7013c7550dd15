package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation is a request to be told when an unavailable book frees up.
// The sweep flips NotificationSent once; it never re-notifies.
type Reservation struct {
	ReservationId    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberId         Reference[Member]  `bson:"memberId" json:"memberId"`
	BookId           Reference[Book]    `bson:"bookId" json:"bookId"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	NotificationSent bool               `bson:"notificationSent" json:"notificationSent"`
}
