package session

import (
	"context"

	"github.com/studenthive/portal/pkg/id"
	"go.uber.org/zap"
)

// Store is the injectable session service. Consumers receive it by
// reference; nothing reaches it through ambient global state, so tests can
// swap in doubles.
type Store interface {
	// Set persists both values atomically from the caller's perspective.
	Set(ctx context.Context, sid id.SessionID, token string, userID id.UserID) error
	// Get returns the bearer token, or "" if never set or cleared.
	Get(ctx context.Context, sid id.SessionID) (string, error)
	// GetUserID returns the resolved user id, or "" if never set or cleared.
	GetUserID(ctx context.Context, sid id.SessionID) (id.UserID, error)
	// Clear removes both values. Callers also expire the session cookie so
	// the next navigation starts from a clean slate.
	Clear(ctx context.Context, sid id.SessionID) error
	// IsAuthenticated is true iff a token is present. No local expiry check:
	// expiry is enforced by the backend rejecting the request.
	IsAuthenticated(ctx context.Context, sid id.SessionID) bool
}

type store struct {
	repo   Repo
	logger *zap.Logger
}

func NewStore(repo Repo, logger *zap.Logger) Store {
	return &store{repo: repo, logger: logger}
}

func (s *store) Set(ctx context.Context, sid id.SessionID, token string, userID id.UserID) error {
	return s.repo.Upsert(ctx, sid, token, userID)
}

func (s *store) Get(ctx context.Context, sid id.SessionID) (string, error) {
	sess, err := s.repo.Find(ctx, sid)
	if err != nil {
		return "", err
	}
	if sess == nil {
		return "", nil
	}
	return sess.Token, nil
}

func (s *store) GetUserID(ctx context.Context, sid id.SessionID) (id.UserID, error) {
	sess, err := s.repo.Find(ctx, sid)
	if err != nil {
		return "", err
	}
	if sess == nil {
		return "", nil
	}
	return sess.UserID, nil
}

func (s *store) Clear(ctx context.Context, sid id.SessionID) error {
	return s.repo.Delete(ctx, sid)
}

func (s *store) IsAuthenticated(ctx context.Context, sid id.SessionID) bool {
	if sid == "" {
		return false
	}
	sess, err := s.repo.Find(ctx, sid)
	if err != nil {
		s.logger.Warn("session lookup failed, treating as anonymous", zap.Error(err))
		return false
	}
	return sess != nil && sess.Token != ""
}
