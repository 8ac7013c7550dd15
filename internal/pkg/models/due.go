package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DueStatus string

const (
	DueStatusPending DueStatus = "pending"
	DueStatusPaid    DueStatus = "paid"
	DueStatusWaived  DueStatus = "waived"
)

// Due is one member borrowing one book copy. A nil ReturnDate means the loan
// is still open; FineAmount is whole currency units, computed at return time.
type Due struct {
	DueId      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberId   Reference[Member]  `bson:"memberId" json:"memberId"`
	BookId     Reference[Book]    `bson:"bookId" json:"bookId"`
	IssueDate  time.Time          `bson:"issueDate" json:"issueDate"`
	DueDate    time.Time          `bson:"dueDate" json:"dueDate"`
	ReturnDate *time.Time         `bson:"returnDate" json:"returnDate"`
	FineAmount int64              `bson:"fineAmount" json:"fineAmount"`
	Status     DueStatus          `bson:"status" json:"status"`
}

// Open reports whether the borrowed copy is still out.
func (d *Due) Open() bool {
	return d.ReturnDate == nil
}
