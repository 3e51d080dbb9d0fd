package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/vault"
	"github.com/jackc/pgx/v5"
)

// maxSessionsPerUser bounds concurrent sessions; the oldest are dropped.
const maxSessionsPerUser = 5

type sessionRepositoryImpl struct {
	db    *database.DB
	vault *vault.Vault
}

// NewSessionRepository stores sessions with the upstream token sealed by v.
func NewSessionRepository(db *database.DB, v *vault.Vault) session.SessionRepository {
	return &sessionRepositoryImpl{db: db, vault: v}
}

func (r *sessionRepositoryImpl) Create(ctx context.Context, s session.Session) ([]string, error) {
	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session user: %w", err)
	}
	sealed, err := r.vault.Seal([]byte(s.AccessToken))
	if err != nil {
		return nil, fmt.Errorf("failed to seal access token: %w", err)
	}

	var pruned []string
	err = WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		insert := `
			INSERT INTO portal_sessions (id, user_id, user_json, access_token, last_role, created_at, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		if _, err := q.Exec(ctx, insert, s.ID, s.UserID, userJSON, sealed, s.LastRole, s.CreatedAt.UTC(), s.ExpiresAt.UTC()); err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}

		prune := `
			DELETE FROM portal_sessions
			WHERE user_id = $1 AND id NOT IN (
				SELECT id FROM portal_sessions
				WHERE user_id = $1 AND expires_at > NOW()
				ORDER BY created_at DESC
				LIMIT $2
			)
			RETURNING id
		`
		rows, err := q.Query(ctx, prune, s.UserID, maxSessionsPerUser)
		if err != nil {
			return fmt.Errorf("failed to prune sessions: %w", err)
		}
		pruned, err = pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("failed to prune sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pruned, nil
}

func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, user_json, access_token, last_role, created_at, expires_at
		FROM portal_sessions
		WHERE id = $1
	`
	var (
		s        session.Session
		userJSON []byte
		sealed   []byte
	)
	err := q.QueryRow(ctx, query, id).Scan(&s.ID, &s.UserID, &userJSON, &sealed, &s.LastRole, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrSessionNotFound
		}
		return session.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	if err := json.Unmarshal(userJSON, &s.User); err != nil {
		return session.Session{}, fmt.Errorf("failed to decode session user: %w", err)
	}
	token, err := r.vault.Open(sealed)
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to open access token: %w", err)
	}
	s.AccessToken = string(token)
	return s, nil
}

func (r *sessionRepositoryImpl) UpdateLastRole(ctx context.Context, id, role string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE portal_sessions SET last_role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("failed to update session role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM portal_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM portal_sessions WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
