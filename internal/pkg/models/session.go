package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is the explicit per-request auth object. It lives in Redis keyed by
// token and is attached to the request context by the session middleware;
// there is no process-wide auth state.
type Session struct {
	Token     string             `json:"token"`
	MemberId  primitive.ObjectID `json:"memberId"`
	Role      MemberRole         `json:"role"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

const SessionContextKey ContextKey = "session"
