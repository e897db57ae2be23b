package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/quadlens/quadlens/internal/types"
)

// PostgresStore implements Store (and Primary) over a single Postgres
// connection pool. Each forked analyzer opens its own PostgresStore, so a
// parallel run never shares a pool between workers.
type PostgresStore struct {
	db *sql.DB
}

var _ Primary = (*PostgresStore)(nil)

// OpenPostgres connects to url and verifies the connection. Managed
// providers hand out postgres:// URLs; lib/pq accepts both spellings, so
// only the legacy "postgres://" prefix is normalized.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	dsn := url
	if strings.HasPrefix(dsn, "postgres://") {
		dsn = "postgresql://" + strings.TrimPrefix(dsn, "postgres://")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Close() error { return p.db.Close() }

func (p *PostgresStore) EnsureFindingsSchema(ctx context.Context, table string) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id SERIAL PRIMARY KEY,
		submission_id INTEGER,
		issue_type TEXT,
		line_number INTEGER,
		severity TEXT,
		description TEXT,
		suggested_fix TEXT,
		created_at TIMESTAMP DEFAULT NOW()
	)`, table)
	if _, err := p.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("ensure %s: %w", table, err)
	}
	return nil
}

func (p *PostgresStore) InsertFindings(ctx context.Context, table string, submissionID int64, findings []types.Finding) (int, error) {
	if len(findings) == 0 {
		return 0, nil
	}
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	q := fmt.Sprintf(`INSERT INTO %s (submission_id, issue_type, line_number, severity, description, suggested_fix)
		VALUES ($1, $2, $3, $4, $5, $6)`, table)
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, f := range findings {
		if _, err := stmt.ExecContext(ctx, submissionID, f.Issue, f.Line, string(f.Severity), f.Snippet, f.Fix); err != nil {
			return 0, fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(findings), nil
}

func (p *PostgresStore) ensureSubmissionsSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS code_submissions (
		id SERIAL PRIMARY KEY,
		filename TEXT,
		code_content TEXT,
		content_hash TEXT,
		created_at TIMESTAMP DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("ensure code_submissions: %w", err)
	}
	return nil
}

func (p *PostgresStore) NewSubmission(ctx context.Context, filename, content, contentHash string) (int64, error) {
	if err := p.ensureSubmissionsSchema(ctx); err != nil {
		return 0, err
	}
	var id int64
	err := p.db.QueryRowContext(ctx, `INSERT INTO code_submissions (filename, code_content, content_hash)
		VALUES ($1, $2, $3) RETURNING id`, filename, content, contentHash).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("new submission: %w", err)
	}
	return id, nil
}

func (p *PostgresStore) InsertMerged(ctx context.Context, submissionID int64, findings []types.Finding) (int, error) {
	_, err := p.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS merged_findings (
		id SERIAL PRIMARY KEY,
		submission_id INTEGER,
		agent_type TEXT,
		issue_type TEXT,
		line_number INTEGER,
		severity TEXT,
		description TEXT,
		suggested_fix TEXT,
		created_at TIMESTAMP DEFAULT NOW()
	)`)
	if err != nil {
		return 0, fmt.Errorf("ensure merged_findings: %w", err)
	}
	if len(findings) == 0 {
		return 0, nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO merged_findings
		(submission_id, agent_type, issue_type, line_number, severity, description, suggested_fix)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, f := range findings {
		if _, err := stmt.ExecContext(ctx, submissionID, string(f.Category), f.Issue, f.Line, string(f.Severity), f.Snippet, f.Fix); err != nil {
			return 0, fmt.Errorf("insert merged finding: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(findings), nil
}
