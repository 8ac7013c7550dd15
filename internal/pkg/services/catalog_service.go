package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreateBookInput struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	ISBN        string `json:"isbn" validate:"required"`
	Category    string `json:"category"`
	TotalCopies int64  `json:"totalCopies" validate:"required,gt=0"`
}

type UpdateBookInput struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	ISBN        *string `json:"isbn"`
	Category    *string `json:"category"`
	TotalCopies *int64  `json:"totalCopies"`
}

type BookQuery struct {
	Category string
	Status   models.BookStatus
}

// CatalogService manages the book inventory.
type CatalogService struct {
	bookRepo BookRepo
	dueRepo  DueRepo
	now      func() time.Time
}

func NewCatalogService(bookRepo BookRepo, dueRepo DueRepo) *CatalogService {
	return &CatalogService{bookRepo: bookRepo, dueRepo: dueRepo, now: time.Now}
}

func (s *CatalogService) CreateBook(ctx context.Context, input CreateBookInput) (*models.Book, error) {
	book := models.Book{
		BookId:          primitive.NewObjectID(),
		Title:           input.Title,
		Author:          input.Author,
		ISBN:            input.ISBN,
		Category:        input.Category,
		TotalCopies:     input.TotalCopies,
		AvailableCopies: input.TotalCopies,
		Status:          models.BookStatusAvailable,
		CreatedAt:       s.now().UTC(),
	}

	if _, err := s.bookRepo.CreateBook(ctx, book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *CatalogService) GetBook(ctx context.Context, bookId primitive.ObjectID) (*models.Book, error) {
	book, err := s.bookRepo.BookByFilter(bson.M{"_id": bookId})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *CatalogService) ListBooks(ctx context.Context, query BookQuery) ([]models.Book, error) {
	filter := bson.M{}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	if query.Status != "" {
		filter["status"] = query.Status
	}
	return s.bookRepo.AllBooks(filter)
}

// UpdateBook patches book metadata. Growing or shrinking totalCopies moves
// availableCopies by the same delta; the shelf count can never drop below the
// number of copies currently out.
func (s *CatalogService) UpdateBook(ctx context.Context, bookId primitive.ObjectID, input UpdateBookInput) (*models.Book, error) {
	book, err := s.GetBook(ctx, bookId)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if input.Title != nil {
		set["title"] = *input.Title
		book.Title = *input.Title
	}
	if input.Author != nil {
		set["author"] = *input.Author
		book.Author = *input.Author
	}
	if input.ISBN != nil {
		set["isbn"] = *input.ISBN
		book.ISBN = *input.ISBN
	}
	if input.Category != nil {
		set["category"] = *input.Category
		book.Category = *input.Category
	}
	if input.TotalCopies != nil {
		borrowed := book.TotalCopies - book.AvailableCopies
		if *input.TotalCopies < borrowed {
			return nil, &models.CustomError{
				Code:    consts.ErrCodeValidation,
				Message: fmt.Sprintf("%d copies are out, totalCopies cannot drop below that", borrowed),
			}
		}
		book.TotalCopies = *input.TotalCopies
		book.AvailableCopies = *input.TotalCopies - borrowed
		set["totalCopies"] = book.TotalCopies
		set["availableCopies"] = book.AvailableCopies
		if book.AvailableCopies == 0 {
			book.Status = models.BookStatusBorrowed
		} else {
			book.Status = models.BookStatusAvailable
		}
		set["status"] = book.Status
	}

	if len(set) == 0 {
		return book, nil
	}

	if err := s.bookRepo.UpdateBook(ctx, bookId, set); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrBookNotFound
		}
		logger.Error(ctx, "failed to update book", "bookId", bookId.Hex(), "error", err)
		return nil, err
	}
	return book, nil
}

// DeleteBook removes a catalog entry. A book with copies still out stays on
// record until every open due against it is closed.
func (s *CatalogService) DeleteBook(ctx context.Context, bookId primitive.ObjectID) error {
	open, err := s.dueRepo.CountDues(bson.M{"bookId": bookId, "returnDate": nil})
	if err != nil {
		logger.Error(ctx, "failed to count open dues", "bookId", bookId.Hex(), "error", err)
		return err
	}
	if open > 0 {
		return &models.CustomError{
			Code:    consts.ErrCodeValidation,
			Message: fmt.Sprintf("book has %d open dues", open),
		}
	}

	if err := s.bookRepo.DeleteBook(ctx, bookId); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return consts.ErrBookNotFound
		}
		return err
	}
	return nil
}
