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
)

type MemberRepository struct {
	repo *MongoRepository[models.Member]
}

func NewMemberRepository() *MemberRepository {
	collection := db.MDB.Database.Collection(consts.MembersCollection)
	mrepo := NewMongoRepository[models.Member](collection)
	return &MemberRepository{repo: mrepo}
}

func (r *MemberRepository) CreateMember(ctx context.Context, member models.Member) (primitive.ObjectID, error) {
	result, err := r.repo.Create(member)
	if err != nil {
		logger.Error(ctx, "Members : Error while inserting %v", err.Error())
		return primitive.NilObjectID, fmt.Errorf("members: error while inserting: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MemberRepository) MemberByFilter(filter interface{}) (*models.Member, error) {
	member, err := r.repo.Read(filter)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) MemberByEmail(email string) (*models.Member, error) {
	return r.MemberByFilter(bson.M{"email": email})
}

func (r *MemberRepository) AllMembers(filter interface{}) ([]models.Member, error) {
	return r.repo.FindAll(filter)
}

func (r *MemberRepository) UpdateMember(ctx context.Context, memberId primitive.ObjectID, update bson.M) error {
	result, err := r.repo.Update(bson.M{"_id": memberId}, update)
	if err != nil {
		logger.Error(ctx, "Members : Error while updating %v", err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MemberRepository) DeleteMember(ctx context.Context, memberId primitive.ObjectID) error {
	result, err := r.repo.Delete(bson.M{"_id": memberId})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
