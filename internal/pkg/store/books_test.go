package store

import (
	"context"
	"testing"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func bookRepoFor(mt *mtest.T) *BookRepository {
	return &BookRepository{repo: NewMongoRepository[models.Book](mt.Coll)}
}

func TestBorrowCopy(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("claims a copy and returns the updated book", func(mt *mtest.T) {
		bookId := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: bookId},
			{Key: "title", Value: "Dune"},
			{Key: "totalCopies", Value: int64(3)},
			{Key: "availableCopies", Value: int64(2)},
			{Key: "status", Value: "available"},
		}}))

		book, err := bookRepoFor(mt).BorrowCopy(context.Background(), bookId)

		assert.NoError(mt, err)
		assert.Equal(mt, int64(2), book.AvailableCopies)
	})

	mt.Run("no match and a zero count means the book does not exist", func(mt *mtest.T) {
		bookId := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, mt.DB.Name()+"."+consts.BooksCollection, mtest.FirstBatch, bson.D{{Key: "n", Value: 0}}),
		)

		_, err := bookRepoFor(mt).BorrowCopy(context.Background(), bookId)

		assert.ErrorIs(mt, err, consts.ErrBookNotFound)
	})

	mt.Run("no match on an existing book means no copies left", func(mt *mtest.T) {
		bookId := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, mt.DB.Name()+"."+consts.BooksCollection, mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
		)

		_, err := bookRepoFor(mt).BorrowCopy(context.Background(), bookId)

		assert.ErrorIs(mt, err, consts.ErrBookUnavailable)
	})
}

func TestReturnCopy(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("restores a copy", func(mt *mtest.T) {
		bookId := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: bookId},
			{Key: "availableCopies", Value: int64(1)},
			{Key: "status", Value: "available"},
		}}))

		book, err := bookRepoFor(mt).ReturnCopy(context.Background(), bookId)

		assert.NoError(mt, err)
		assert.Equal(mt, models.BookStatusAvailable, book.Status)
	})

	mt.Run("unknown book", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := bookRepoFor(mt).ReturnCopy(context.Background(), primitive.NewObjectID())

		assert.ErrorIs(mt, err, consts.ErrBookNotFound)
	})
}
