// Package pg implements the credential and submission stores on PostgreSQL.
package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"layanan.org/internal/auth"
	"layanan.org/internal/ids"
	"layanan.org/internal/submission"
)

// Store wraps a SQL connection pool.
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL with the pgx driver and verifies the
// connection before returning.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing handle. Used by tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports connection health for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// AdminCredential implements auth.CredentialStore.
func (s *Store) AdminCredential(ctx context.Context) (auth.Credential, error) {
	const q = `SELECT username, password FROM admin_credentials ORDER BY username LIMIT 1`

	var cred auth.Credential
	err := s.db.QueryRowContext(ctx, q).Scan(&cred.Username, &cred.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Credential{}, auth.ErrCredentialNotFound
	}
	if err != nil {
		return auth.Credential{}, fmt.Errorf("query admin credential: %w", err)
	}
	return cred, nil
}

// Get implements submission.Store.
func (s *Store) Get(ctx context.Context, cat submission.Category, id string) (submission.Record, error) {
	const q = `
SELECT doc, reference_number, status, created_at
FROM submissions
WHERE collection = $1 AND id = $2`

	var (
		doc     []byte
		refNum  sql.NullString
		status  string
		created time.Time
	)
	err := s.db.QueryRowContext(ctx, q, cat.Path, id).Scan(&doc, &refNum, &status, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return submission.Record{}, submission.ErrNotFound
	}
	if err != nil {
		return submission.Record{}, fmt.Errorf("query submission: %w", err)
	}
	return buildRecord(id, doc, refNum, status, created)
}

// List implements submission.Store.
func (s *Store) List(ctx context.Context, cat submission.Category) ([]submission.Record, error) {
	const q = `
SELECT id, doc, reference_number, status, created_at
FROM submissions
WHERE collection = $1
ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, q, cat.Path)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	out := []submission.Record{}
	for rows.Next() {
		var (
			id      string
			doc     []byte
			refNum  sql.NullString
			status  string
			created time.Time
		)
		if err := rows.Scan(&id, &doc, &refNum, &status, &created); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		rec, err := buildRecord(id, doc, refNum, status, created)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

// Update implements submission.Store. Absent patch fields keep their
// stored values via coalesce.
func (s *Store) Update(ctx context.Context, cat submission.Category, id string, patch submission.Patch) error {
	const q = `
UPDATE submissions
SET reference_number = coalesce($3, reference_number),
    status = coalesce($4, status)
WHERE collection = $1 AND id = $2`

	var refNum, status sql.NullString
	if patch.ReferenceNumber != nil {
		refNum = sql.NullString{String: *patch.ReferenceNumber, Valid: true}
	}
	if patch.Status != nil {
		status = sql.NullString{String: string(*patch.Status), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, q, cat.Path, id, refNum, status)
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	if affected == 0 {
		return submission.ErrNotFound
	}
	return nil
}

// Create implements submission.Store.
func (s *Store) Create(ctx context.Context, cat submission.Category, rec submission.Record) (string, error) {
	const q = `
INSERT INTO submissions (collection, id, doc, reference_number, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	if rec.ID == "" {
		rec.ID = ids.New()
	}
	if rec.Status == "" {
		rec.Status = submission.StatusNotProcessed
	}
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now().UTC()
	}
	if rec.Fields == nil {
		rec.Fields = map[string]any{}
	}

	doc, err := json.Marshal(rec.Fields)
	if err != nil {
		return "", fmt.Errorf("encode submission doc: %w", err)
	}
	var refNum sql.NullString
	if rec.ReferenceNumber != "" {
		refNum = sql.NullString{String: rec.ReferenceNumber, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, q, cat.Path, rec.ID, doc, refNum, string(rec.Status), rec.SubmittedAt)
	if err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}
	return rec.ID, nil
}

func buildRecord(id string, doc []byte, refNum sql.NullString, status string, created time.Time) (submission.Record, error) {
	rec := submission.Record{
		ID:          id,
		Status:      submission.Status(status),
		SubmittedAt: created.UTC(),
	}
	if refNum.Valid {
		rec.ReferenceNumber = refNum.String
	}
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &rec.Fields); err != nil {
			return submission.Record{}, fmt.Errorf("decode submission doc: %w", err)
		}
	}
	return rec, nil
}
