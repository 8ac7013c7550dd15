package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookStatus string

const (
	BookStatusAvailable BookStatus = "available"
	BookStatusBorrowed  BookStatus = "borrowed"
)

type Book struct {
	BookId          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Author          string             `bson:"author" json:"author"`
	ISBN            string             `bson:"isbn" json:"isbn"`
	Category        string             `bson:"category" json:"category"`
	TotalCopies     int64              `bson:"totalCopies" json:"totalCopies"`
	AvailableCopies int64              `bson:"availableCopies" json:"availableCopies"`
	Status          BookStatus         `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
