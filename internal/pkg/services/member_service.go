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
	"golang.org/x/crypto/bcrypt"
)

type CreateMemberInput struct {
	Name     string            `json:"name" validate:"required"`
	Email    string            `json:"email" validate:"required,email"`
	Password string            `json:"password" validate:"required,min=8"`
	Role     models.MemberRole `json:"role" validate:"omitempty,oneof=admin member"`
}

type UpdateMemberInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// MemberService manages member accounts and their credentials.
type MemberService struct {
	memberRepo MemberRepo
	dueRepo    DueRepo
	now        func() time.Time
}

func NewMemberService(memberRepo MemberRepo, dueRepo DueRepo) *MemberService {
	return &MemberService{memberRepo: memberRepo, dueRepo: dueRepo, now: time.Now}
}

func (s *MemberService) CreateMember(ctx context.Context, input CreateMemberInput) (*models.Member, error) {
	if _, err := s.memberRepo.MemberByEmail(input.Email); err == nil {
		return nil, &models.CustomError{
			Code:    consts.ErrCodeValidation,
			Message: "a member with this email already exists",
		}
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error(ctx, "failed to hash password", "error", err)
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleMember
	}

	member := models.Member{
		MemberId:     primitive.NewObjectID(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}

	if _, err := s.memberRepo.CreateMember(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) GetMember(ctx context.Context, memberId primitive.ObjectID) (*models.Member, error) {
	member, err := s.memberRepo.MemberByFilter(bson.M{"_id": memberId})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *MemberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	return s.memberRepo.AllMembers(bson.M{})
}

func (s *MemberService) UpdateMember(ctx context.Context, memberId primitive.ObjectID, input UpdateMemberInput) (*models.Member, error) {
	member, err := s.GetMember(ctx, memberId)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
		member.Name = *input.Name
	}
	if input.Email != nil && *input.Email != member.Email {
		if _, err := s.memberRepo.MemberByEmail(*input.Email); err == nil {
			return nil, &models.CustomError{
				Code:    consts.ErrCodeValidation,
				Message: "a member with this email already exists",
			}
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		set["email"] = *input.Email
		member.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error(ctx, "failed to hash password", "error", err)
			return nil, err
		}
		set["passwordHash"] = string(hash)
		member.PasswordHash = string(hash)
	}

	if len(set) == 0 {
		return member, nil
	}

	if err := s.memberRepo.UpdateMember(ctx, memberId, set); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// DeleteMember removes an account. A member holding books or owing an unpaid
// fine keeps the account until the ledger is clean.
func (s *MemberService) DeleteMember(ctx context.Context, memberId primitive.ObjectID) error {
	open, err := s.dueRepo.CountDues(bson.M{
		"memberId": memberId,
		"$or": bson.A{
			bson.M{"returnDate": nil},
			bson.M{"fineAmount": bson.M{"$gt": 0}, "status": models.DueStatusPending},
		},
	})
	if err != nil {
		logger.Error(ctx, "failed to count open dues", "memberId", memberId.Hex(), "error", err)
		return err
	}
	if open > 0 {
		return &models.CustomError{
			Code:    consts.ErrCodeValidation,
			Message: fmt.Sprintf("member has %d open dues or unsettled fines", open),
		}
	}

	if err := s.memberRepo.DeleteMember(ctx, memberId); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return consts.ErrMemberNotFound
		}
		return err
	}
	return nil
}
