package session

import (
	"context"
	"database/sql"

	"github.com/studenthive/portal/pkg/id"
	"go.uber.org/zap"
)

type Repo interface {
	Upsert(ctx context.Context, sid id.SessionID, token string, userID id.UserID) error
	Find(ctx context.Context, sid id.SessionID) (*Session, error)
	Delete(ctx context.Context, sid id.SessionID) error
}

const (
	upsertSessionQuery = `
						INSERT INTO sessions (sid, token, user_id)
						VALUES ($1, $2, $3)
						ON CONFLICT (sid) DO UPDATE
						SET token = EXCLUDED.token, user_id = EXCLUDED.user_id, updated_at = now()
						`
	findSessionQuery = `
						SELECT sid, token, user_id, created_at
						FROM sessions WHERE sid = $1
						`
	deleteSessionQuery = `
						DELETE FROM sessions WHERE sid = $1
						`
)

type sessionRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRepo(db *sql.DB, logger *zap.Logger) Repo {
	return &sessionRepo{db: db, logger: logger}
}

// Upsert writes token and user id in a single statement so readers never
// observe a partially written session.
func (r *sessionRepo) Upsert(ctx context.Context, sid id.SessionID, token string, userID id.UserID) error {
	_, err := r.db.ExecContext(ctx, upsertSessionQuery, string(sid), token, string(userID))
	if err != nil {
		r.logger.Error("failed to upsert session", zap.Error(err))
	}
	return err
}

func (r *sessionRepo) Find(ctx context.Context, sid id.SessionID) (*Session, error) {
	row := r.db.QueryRowContext(ctx, findSessionQuery, string(sid))
	var s Session
	if err := row.Scan(&s.SID, &s.Token, &s.UserID, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to lookup session", zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, sid id.SessionID) error {
	_, err := r.db.ExecContext(ctx, deleteSessionQuery, string(sid))
	if err != nil {
		r.logger.Error("failed to delete session", zap.String("sid", string(sid)), zap.Error(err))
	}
	return err
}
