package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLArtifactRepo keeps session artifacts in the local SQLite database.
type SQLArtifactRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ ArtifactRepo = (*SQLArtifactRepo)(nil)

func (r *SQLArtifactRepo) Save(ctx context.Context, a *Artifact) error {
	if a.SessionID == "" {
		return ErrNoSession
	}
	prepareArtifact(a)

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	a.Sequence = seqNum

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO artifacts (id, sequence, session_id, kind, goal, created_at, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Sequence, a.SessionID, a.Kind, a.Goal,
		a.CreatedAt.Format(timeLayout), string(a.Body),
	)
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	return nil
}

func (r *SQLArtifactRepo) Latest(ctx context.Context, sessionID, kind string) (*Artifact, error) {
	var (
		a       Artifact
		created string
		body    string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, session_id, kind, goal, created_at, body
		 FROM artifacts WHERE session_id = ? AND kind = ?
		 ORDER BY sequence DESC LIMIT 1`,
		sessionID, kind,
	).Scan(&a.ID, &a.Sequence, &a.SessionID, &a.Kind, &a.Goal, &created, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest artifact: %w", err)
	}

	a.CreatedAt, err = time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	a.Body = []byte(body)
	return &a, nil
}

// Prune deletes artifacts created before cutoff and reports how many went.
func (r *SQLArtifactRepo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM artifacts WHERE created_at < ?`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune artifacts: %w", err)
	}
	return res.RowsAffected()
}

func prepareArtifact(a *Artifact) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.CreatedAt = a.CreatedAt.UTC()
}
