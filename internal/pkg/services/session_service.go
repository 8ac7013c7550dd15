package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/configs"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const sessionKeyPrefix = "session:"

// SessionService issues and resolves bearer sessions backed by Redis.
type SessionService struct {
	memberRepo MemberRepo
	store      SessionStore
	now        func() time.Time
}

func NewSessionService(memberRepo MemberRepo, store SessionStore) *SessionService {
	return &SessionService{memberRepo: memberRepo, store: store, now: time.Now}
}

// Login checks the credentials and drops a fresh session into Redis. The key
// expires with the session so Redis does the cleanup.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	member, err := s.memberRepo.MemberByEmail(email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrInvalidCredentials
		}
		logger.Error(ctx, "failed to load member for login", "error", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, consts.ErrInvalidCredentials
	}

	ttl := time.Duration(configs.SESSION_TTL_MINUTES) * time.Minute
	session := models.Session{
		Token:     uuid.New().String(),
		MemberId:  member.MemberId,
		Role:      member.Role,
		ExpiresAt: s.now().UTC().Add(ttl),
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, sessionKeyPrefix+session.Token, payload, ttl); err != nil {
		logger.Error(ctx, "failed to store session", "error", err)
		return nil, err
	}

	return &session, nil
}

func (s *SessionService) Logout(ctx context.Context, token string) error {
	return s.store.Delete(ctx, sessionKeyPrefix+token)
}

// SessionByToken resolves a bearer token to its session. Expiry is enforced
// twice, by the Redis TTL and by the timestamp inside the payload.
func (s *SessionService) SessionByToken(ctx context.Context, token string) (*models.Session, error) {
	payload, err := s.store.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, consts.ErrSessionInvalid
		}
		logger.Error(ctx, "failed to read session", "error", err)
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, consts.ErrSessionInvalid
	}
	if session.Expired(s.now().UTC()) {
		if delErr := s.store.Delete(ctx, sessionKeyPrefix+token); delErr != nil {
			logger.Warn(ctx, "failed to drop expired session", "error", delErr)
		}
		return nil, consts.ErrSessionInvalid
	}

	return &session, nil
}
