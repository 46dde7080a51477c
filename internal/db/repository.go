package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"screenpass/internal/story"
)

var ErrNotFound = errors.New("not found")

// CreateDocument registers a new document and returns its id.
func (s *Store) CreateDocument(ctx context.Context, title, sourcePath string) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents(id, title, source_path) VALUES(?,?,?)`, id, title, sourcePath); err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	return id, nil
}

// SaveContext stores the context a document continues from and the ordinal
// of its next unit.
func (s *Store) SaveContext(ctx context.Context, documentID string, nextOrdinal int, pc story.PersistentContext) error {
	return saveContext(ctx, s.db, documentID, nextOrdinal, pc)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveContext(ctx context.Context, ex execer, documentID string, nextOrdinal int, pc story.PersistentContext) error {
	raw, err := json.Marshal(pc)
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}
	if _, err := ex.ExecContext(ctx, `
		INSERT INTO contexts(document_id, next_ordinal, context_json) VALUES(?,?,?)
		ON CONFLICT(document_id) DO UPDATE SET
			next_ordinal = excluded.next_ordinal,
			context_json = excluded.context_json,
			updated_at = CURRENT_TIMESTAMP`,
		documentID, nextOrdinal, string(raw)); err != nil {
		return fmt.Errorf("upsert context: %w", err)
	}
	return nil
}

// LoadContext returns the stored context of a document and its next
// ordinal. ErrNotFound means the document never accepted a unit.
func (s *Store) LoadContext(ctx context.Context, documentID string) (story.PersistentContext, int, error) {
	var raw string
	var next int
	err := s.db.QueryRowContext(ctx,
		`SELECT next_ordinal, context_json FROM contexts WHERE document_id = ?`, documentID).Scan(&next, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return story.PersistentContext{}, 0, ErrNotFound
	}
	if err != nil {
		return story.PersistentContext{}, 0, fmt.Errorf("query context: %w", err)
	}
	pc := story.NewContext()
	if err := json.Unmarshal([]byte(raw), &pc); err != nil {
		return story.PersistentContext{}, 0, fmt.Errorf("decode context: %w", err)
	}
	return pc, next, nil
}

// Attempt is one pass of one unit through the pipeline.
type Attempt struct {
	DocumentID     string
	Ordinal        int
	Accepted       bool
	Reasons        []string
	SurgicalPrompt string
	Content        string
	Report         any
	// Context and NextOrdinal are stored only for accepted attempts.
	Context     story.PersistentContext
	NextOrdinal int
}

// RecordAttempt stores an attempt. An accepted attempt also replaces the
// document's context in the same transaction; a rejected one never
// touches it.
func (s *Store) RecordAttempt(ctx context.Context, a Attempt) error {
	report, err := json.Marshal(a.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO unit_attempts(document_id, ordinal, accepted, reasons, surgical_prompt, content, report_json) VALUES(?,?,?,?,?,?,?)`,
		a.DocumentID,
		a.Ordinal,
		boolInt(a.Accepted),
		strings.Join(a.Reasons, ","),
		a.SurgicalPrompt,
		a.Content,
		string(report),
	); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	if a.Accepted {
		if err := saveContext(ctx, tx, a.DocumentID, a.NextOrdinal, a.Context); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// AttemptCounts returns how many attempts were accepted and rejected.
func (s *Store) AttemptCounts(ctx context.Context) (accepted, rejected int, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(accepted), 0), COALESCE(SUM(1 - accepted), 0) FROM unit_attempts`)
	if err := row.Scan(&accepted, &rejected); err != nil {
		return 0, 0, fmt.Errorf("scan attempt counts: %w", err)
	}
	return accepted, rejected, nil
}

var tables = map[string]struct{}{"documents": {}, "contexts": {}, "unit_attempts": {}}

func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	if _, ok := tables[table]; !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
