package store

import (
	"context"
	"fmt"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/db"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookRepository struct {
	repo *MongoRepository[models.Book]
}

func NewBookRepository() *BookRepository {
	collection := db.MDB.Database.Collection(consts.BooksCollection)
	mrepo := NewMongoRepository[models.Book](collection)
	return &BookRepository{repo: mrepo}
}

func (r *BookRepository) CreateBook(ctx context.Context, book models.Book) (primitive.ObjectID, error) {
	result, err := r.repo.Create(book)
	if err != nil {
		logger.Error(ctx, "Books : Error while inserting %v", err.Error())
		return primitive.NilObjectID, fmt.Errorf("books: error while inserting: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *BookRepository) BookByFilter(filter interface{}) (*models.Book, error) {
	book, err := r.repo.Read(filter)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *BookRepository) AllBooks(filter interface{}) ([]models.Book, error) {
	return r.repo.FindAll(filter)
}

func (r *BookRepository) UpdateBook(ctx context.Context, bookId primitive.ObjectID, update bson.M) error {
	result, err := r.repo.Update(bson.M{"_id": bookId}, update)
	if err != nil {
		logger.Error(ctx, "Books : Error while updating %v", err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *BookRepository) DeleteBook(ctx context.Context, bookId primitive.ObjectID) error {
	result, err := r.repo.Delete(bson.M{"_id": bookId})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// BorrowCopy consumes one available copy with a conditional update so two
// concurrent issues can never oversell the last copy. The pipeline flips the
// displayed status to borrowed when the last copy goes out.
func (r *BookRepository) BorrowCopy(ctx context.Context, bookId primitive.ObjectID) (*models.Book, error) {
	filter := bson.M{"_id": bookId, "availableCopies": bson.M{"$gt": 0}}
	update := bson.A{bson.M{"$set": bson.M{
		"availableCopies": bson.M{"$subtract": bson.A{"$availableCopies", 1}},
		"status": bson.M{"$cond": bson.A{
			bson.M{"$lte": bson.A{"$availableCopies", 1}},
			models.BookStatusBorrowed,
			models.BookStatusAvailable,
		}},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	book, err := r.repo.FindOneAndUpdate(filter, update, opts)
	if err == mongo.ErrNoDocuments {
		count, countErr := r.repo.CountDocuments(bson.M{"_id": bookId})
		if countErr != nil {
			return nil, countErr
		}
		if count == 0 {
			return nil, consts.ErrBookNotFound
		}
		return nil, consts.ErrBookUnavailable
	}
	if err != nil {
		logger.Error(ctx, "Books : Error while borrowing copy %v", err.Error())
		return nil, err
	}
	return &book, nil
}

// ReturnCopy hands one copy back; a book with a copy on the shelf is always
// displayed as available.
func (r *BookRepository) ReturnCopy(ctx context.Context, bookId primitive.ObjectID) (*models.Book, error) {
	filter := bson.M{"_id": bookId}
	update := bson.A{bson.M{"$set": bson.M{
		"availableCopies": bson.M{"$add": bson.A{"$availableCopies", 1}},
		"status":          models.BookStatusAvailable,
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	book, err := r.repo.FindOneAndUpdate(filter, update, opts)
	if err == mongo.ErrNoDocuments {
		return nil, consts.ErrBookNotFound
	}
	if err != nil {
		logger.Error(ctx, "Books : Error while returning copy %v", err.Error())
		return nil, err
	}
	return &book, nil
}
